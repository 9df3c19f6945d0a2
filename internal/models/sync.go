package models

import "encoding/json"

// FindingType names the axis a [Finding] belongs to.
type FindingType string

const (
	FindingAPIContract FindingType = "api_contract"
	FindingDataModel   FindingType = "data_model"
	FindingAuth        FindingType = "auth"
)

// Status is the outcome recorded on a [Finding].
type Status string

const (
	StatusMatched          Status = "matched"
	StatusMissingEndpoint  Status = "missing_endpoint"
	StatusMethodMismatch   Status = "method_mismatch"
	StatusMissingModel     Status = "missing_model"
	StatusPropertyMismatch Status = "property_mismatch"
	StatusMismatch         Status = "mismatch"
	StatusRoleMismatch     Status = "role_mismatch"
)

// MethodDiff compares the HTTP methods declared by a frontend service and its backend endpoint.
type MethodDiff struct {
	FrontendOnly []string `json:"frontend_only"`
	BackendOnly  []string `json:"backend_only"`
	Common       []string `json:"common"`
}

// Empty reports whether both sides declare the same methods.
func (d *MethodDiff) Empty() bool {
	return d == nil || (len(d.FrontendOnly) == 0 && len(d.BackendOnly) == 0)
}

// Clone returns a deep copy; nil stays nil.
func (d *MethodDiff) Clone() *MethodDiff {
	if d == nil {
		return nil
	}
	return &MethodDiff{
		FrontendOnly: cloneStrings(d.FrontendOnly),
		BackendOnly:  cloneStrings(d.BackendOnly),
		Common:       cloneStrings(d.Common),
	}
}

// TypeMismatch is a property both sides declare with incompatible types.
type TypeMismatch struct {
	Property string `json:"property"`
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
}

// PropertyDiff compares the properties of a frontend model and its backend counterpart.
type PropertyDiff struct {
	FrontendOnly   []string       `json:"frontend_only"`
	BackendOnly    []string       `json:"backend_only"`
	TypeMismatches []TypeMismatch `json:"type_mismatches"`
}

// Empty reports whether the two property sets agree.
func (d *PropertyDiff) Empty() bool {
	return d == nil || (len(d.FrontendOnly) == 0 && len(d.BackendOnly) == 0 && len(d.TypeMismatches) == 0)
}

// Clone returns a deep copy; nil stays nil.
func (d *PropertyDiff) Clone() *PropertyDiff {
	if d == nil {
		return nil
	}
	mismatches := make([]TypeMismatch, len(d.TypeMismatches))
	copy(mismatches, d.TypeMismatches)
	return &PropertyDiff{
		FrontendOnly:   cloneStrings(d.FrontendOnly),
		BackendOnly:    cloneStrings(d.BackendOnly),
		TypeMismatches: mismatches,
	}
}

// RoleDiff lists roles declared by only one side.
type RoleDiff struct {
	FrontendOnly []string `json:"frontend_only"`
	BackendOnly  []string `json:"backend_only"`
}

// Empty reports whether both sides declare the same roles.
func (d *RoleDiff) Empty() bool {
	return d == nil || (len(d.FrontendOnly) == 0 && len(d.BackendOnly) == 0)
}

// Clone returns a deep copy; nil stays nil.
func (d *RoleDiff) Clone() *RoleDiff {
	if d == nil {
		return nil
	}
	return &RoleDiff{FrontendOnly: cloneStrings(d.FrontendOnly), BackendOnly: cloneStrings(d.BackendOnly)}
}

// Finding is the result of comparing one frontend element against its backend counterpart.
//
// Which fields are set depends on Type and Status; unset fields are omitted when encoded,
// except backend_endpoint on a paired api_contract finding and both sides of an auth
// mechanism mismatch, which encode as null when absent.
type Finding struct {
	Type   FindingType `json:"type"`
	Status Status      `json:"status"`

	// api_contract
	FrontendService string      `json:"frontend_service,omitempty"`
	BackendEndpoint *string     `json:"backend_endpoint,omitempty"`
	Methods         *MethodDiff `json:"methods,omitempty"`

	// data_model
	ModelName     string        `json:"model_name,omitempty"`
	PropertyDiffs *PropertyDiff `json:"property_diffs,omitempty"`

	// auth
	Component   string    `json:"component,omitempty"`
	Frontend    *string   `json:"frontend,omitempty"`
	Backend     *string   `json:"backend,omitempty"`
	Differences *RoleDiff `json:"differences,omitempty"`
}

// MarshalJSON implements [json.Marshaler].
func (f Finding) MarshalJSON() ([]byte, error) {
	type plain Finding
	out := struct {
		plain
		BackendEndpoint json.RawMessage `json:"backend_endpoint,omitempty"`
		Frontend        json.RawMessage `json:"frontend,omitempty"`
		Backend         json.RawMessage `json:"backend,omitempty"`
	}{plain: plain(f)}

	if f.Type == FindingAPIContract && f.Status != StatusMissingEndpoint {
		out.BackendEndpoint = nullable(f.BackendEndpoint)
	}
	if f.Type == FindingAuth && f.Status == StatusMismatch {
		out.Frontend = nullable(f.Frontend)
		out.Backend = nullable(f.Backend)
	} else {
		if f.Frontend != nil {
			out.Frontend = nullable(f.Frontend)
		}
		if f.Backend != nil {
			out.Backend = nullable(f.Backend)
		}
	}
	return json.Marshal(out)
}

// Subject returns the frontend element the finding is about, for display.
func (f Finding) Subject() string {
	switch f.Type {
	case FindingAPIContract:
		return f.FrontendService
	case FindingDataModel:
		return f.ModelName
	case FindingAuth:
		if f.Component != "" {
			return f.Component
		}
		return "roles"
	}
	return ""
}

// AdjustmentType names a corrective action.
type AdjustmentType string

const (
	AdjustCreateEndpoint        AdjustmentType = "create_endpoint"
	AdjustAPIMethodMismatch     AdjustmentType = "api_method_mismatch"
	AdjustCreateModel           AdjustmentType = "create_model"
	AdjustModelPropertyMismatch AdjustmentType = "model_property_mismatch"
	AdjustAuthMechanismMismatch AdjustmentType = "auth_mechanism_mismatch"
	AdjustAuthRoleMismatch      AdjustmentType = "auth_role_mismatch"
)

// Adjustment is a recommended corrective action derived from a non-matching finding.
type Adjustment struct {
	Type    AdjustmentType `json:"type"`
	Service string         `json:"service,omitempty"`
	Model   string         `json:"model,omitempty"`
	Details any            `json:"details,omitempty"`
}

// SideBySide carries both sides' values for an auth adjustment.
type SideBySide struct {
	Frontend any `json:"frontend"`
	Backend  any `json:"backend"`
}

// Adjustments buckets adjustments by owner and urgency.
type Adjustments struct {
	Frontend []Adjustment `json:"frontend"`
	Backend  []Adjustment `json:"backend"`
	Critical []Adjustment `json:"critical"`
}

// NewAdjustments returns empty, non-nil buckets.
func NewAdjustments() Adjustments {
	return Adjustments{
		Frontend: []Adjustment{},
		Backend:  []Adjustment{},
		Critical: []Adjustment{},
	}
}

// Len returns the total number of adjustments across buckets.
func (a Adjustments) Len() int {
	return len(a.Frontend) + len(a.Backend) + len(a.Critical)
}

// IsEmpty reports whether no bucket holds an adjustment.
func (a Adjustments) IsEmpty() bool {
	return a.Len() == 0
}

// SyncReport is the output of the frontend_backend_sync operation.
type SyncReport struct {
	Results     []Finding   `json:"sync_results"`
	Adjustments Adjustments `json:"adjustments_needed"`
}

// Counts implements [Counter].
func (r *SyncReport) Counts() RunCounts {
	return RunCounts{
		Findings:    len(r.Results),
		Adjustments: r.Adjustments.Len(),
		Critical:    len(r.Adjustments.Critical),
	}
}

// CountByStatus tallies findings per [Status].
func (r *SyncReport) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, f := range r.Results {
		counts[f.Status]++
	}
	return counts
}
