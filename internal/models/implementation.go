package models

import "strings"

// FrontendImplementation summarizes what the frontend actually built.
type FrontendImplementation struct {
	APIServices []APIService `json:"api_services"`
	Models      []ModelSpec  `json:"models"`
	AuthConfig  AuthConfig   `json:"auth_config"`
}

// BackendImplementation summarizes what the backend actually built.
type BackendImplementation struct {
	APIEndpoints   []ImplementedEndpoint `json:"api_endpoints"`
	DataModels     []ModelSpec           `json:"data_models"`
	SecurityConfig AuthConfig            `json:"security_config"`
}

// APIService is a frontend client for some backend resource.
//
// Path and Endpoint are synonyms; frontend tasks emit "endpoint" while hand-written
// summaries tend to use "path".
type APIService struct {
	Name     string   `json:"name"`
	Path     string   `json:"path,omitempty"`
	Endpoint string   `json:"endpoint,omitempty"`
	Method   string   `json:"method,omitempty"`
	Methods  []string `json:"methods"`
}

// Route returns the declared path, if any.
func (s APIService) Route() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Endpoint
}

// AllMethods returns Methods plus the single Method field when set.
func (s APIService) AllMethods() []string {
	return mergeMethod(s.Methods, s.Method)
}

// ImplementedEndpoint is an endpoint the backend exposes.
type ImplementedEndpoint struct {
	Name    string   `json:"name,omitempty"`
	Path    string   `json:"path"`
	Method  string   `json:"method,omitempty"`
	Methods []string `json:"methods"`
}

// AllMethods returns Methods plus the single Method field when set.
func (e ImplementedEndpoint) AllMethods() []string {
	return mergeMethod(e.Methods, e.Method)
}

// AuthConfig is one side's authentication/authorization declaration.
//
// Mechanism is nil when the side declares none, which is distinct from an explicit "".
type AuthConfig struct {
	Mechanism *string  `json:"mechanism"`
	Roles     []string `json:"roles"`
}

func mergeMethod(methods []string, method string) []string {
	out := cloneStrings(methods)
	if strings.TrimSpace(method) != "" {
		out = append(out, method)
	}
	return out
}
