package models

import (
	"fmt"
	"strings"
)

// Design is a structured description of a system's intended architecture.
//
// Every key is optional; absent keys behave as empty collections.
type Design struct {
	UIComponents         []UIComponent  `json:"ui_components"`
	APIEndpoints         []EndpointSpec `json:"api_endpoints"`
	DataModels           []ModelSpec    `json:"data_models"`
	Services             []ServiceSpec  `json:"services"`
	FrontendDependencies List           `json:"frontend_dependencies"`
	BackendDependencies  List           `json:"backend_dependencies"`
}

// UIComponent is a screen or widget the frontend must provide.
type UIComponent struct {
	Name         string `json:"name"`
	Requirements List   `json:"requirements"`
	Dependencies List   `json:"dependencies"`
}

// EndpointSpec is an API endpoint as designed, before either side implements it.
type EndpointSpec struct {
	Path          string `json:"path"`
	Method        string `json:"method"`
	DataModel     string `json:"data_model"`
	RequestModel  string `json:"request_model"`
	ResponseModel string `json:"response_model"`
	Security      List   `json:"security"`
}

// ModelSpec is a data model. Properties are kept verbatim; use [ModelSpec.PropertySet] to read them.
type ModelSpec struct {
	Name          string `json:"name"`
	Properties    List   `json:"properties"`
	Validations   List   `json:"validations"`
	Relationships List   `json:"relationships"`
}

// ServiceSpec is a backend service-layer component.
type ServiceSpec struct {
	Name         string `json:"name"`
	Operations   List   `json:"operations"`
	Dependencies List   `json:"dependencies"`
	DataAccess   Object `json:"data_access"`
}

// Property is one field of a data model.
type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// ParseProperty reads the string form of a property: "email" or "email:string".
func ParseProperty(s string) Property {
	name, typ, _ := strings.Cut(s, ":")
	return Property{Name: strings.TrimSpace(name), Type: strings.TrimSpace(typ)}
}

// PropertySet interprets the raw properties list.
//
// Strings go through [ParseProperty]; mappings contribute their "name", "type" and
// "required" keys. Entries without a name are skipped.
func (m ModelSpec) PropertySet() []Property {
	props := make([]Property, 0, len(m.Properties))
	for _, raw := range m.Properties {
		var p Property
		switch v := raw.(type) {
		case string:
			p = ParseProperty(v)
		case map[string]any:
			p.Name = stringField(v, "name")
			p.Type = stringField(v, "type")
			p.Required, _ = v["required"].(bool)
		default:
			continue
		}
		if p.Name != "" {
			props = append(props, p)
		}
	}
	return props
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}
