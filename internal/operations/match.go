package operations

import (
	"sort"
	"strings"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/shared"
)

var (
	nameSuffixes  = []string{"Service", "Controller", "Client", "Resource", "Api"}
	modelSuffixes = []string{"dto", "model", "entity"}
)

// ResourceKey reduces a service or controller name to the resource it serves:
// "UserService" and "UsersController" both become "user"/"users".
func ResourceKey(name string) string {
	return shared.NormalizeKey(shared.TrimSuffixFold(strings.TrimSpace(name), nameSuffixes...))
}

// PathKey returns the resource key of a route: its first segment after any "api" and
// version prefix that is not a parameter. "/api/v1/users/{id}" becomes "users".
func PathKey(path string) string {
	for _, seg := range shared.PathSegments(path) {
		if seg != "{}" {
			return shared.NormalizeKey(seg)
		}
	}
	return ""
}

// ModelKey reduces a model name for comparison: "UserDto", "user_model" and "User" all become "user".
func ModelKey(name string) string {
	return shared.TrimSuffixFold(shared.NormalizeKey(name), modelSuffixes...)
}

// sameResource compares resource keys, treating singular and plural forms as equal.
// Empty keys never match.
func sameResource(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || shared.Singular(a) == b || a == shared.Singular(b) || shared.Singular(a) == shared.Singular(b)
}

func endpointKey(ep models.ImplementedEndpoint) string {
	if key := PathKey(ep.Path); key != "" {
		return key
	}
	return ResourceKey(ep.Name)
}

// MatchEndpoint finds the backend endpoint serving svc.
//
// When svc declares a path, only an endpoint with the same normalized path matches.
// Otherwise the service's resource key (its name without a Service, Controller, Client,
// Resource or Api suffix) is compared with each endpoint's resource key (first path
// segment, or name when the endpoint has no path). The first match in declaration
// order wins.
func MatchEndpoint(svc models.APIService, endpoints []models.ImplementedEndpoint) (models.ImplementedEndpoint, bool) {
	if route := svc.Route(); route != "" {
		want := shared.NormalizePath(route)
		for _, ep := range endpoints {
			if ep.Path != "" && shared.NormalizePath(ep.Path) == want {
				return ep, true
			}
		}
		return models.ImplementedEndpoint{}, false
	}

	key := ResourceKey(svc.Name)
	for _, ep := range endpoints {
		if sameResource(key, endpointKey(ep)) {
			return ep, true
		}
	}
	return models.ImplementedEndpoint{}, false
}

// MatchModel finds the backend model with the same [ModelKey] as m. The first match wins.
func MatchModel(m models.ModelSpec, candidates []models.ModelSpec) (models.ModelSpec, bool) {
	key := ModelKey(m.Name)
	if key == "" {
		return models.ModelSpec{}, false
	}
	for _, c := range candidates {
		if ModelKey(c.Name) == key {
			return c, true
		}
	}
	return models.ModelSpec{}, false
}

// CompareMethods diffs two method lists as case-insensitive sets.
func CompareMethods(frontend, backend []string) *models.MethodDiff {
	fe := toSet(upper(frontend), strings.ToUpper)
	be := toSet(upper(backend), strings.ToUpper)

	return &models.MethodDiff{
		FrontendOnly: minus(fe, be),
		BackendOnly:  minus(be, fe),
		Common:       intersect(fe, be),
	}
}

// CompareRoles diffs two role lists as case-insensitive sets, reporting each side's spelling.
func CompareRoles(frontend, backend []string) *models.RoleDiff {
	fe := toSet(frontend, strings.ToLower)
	be := toSet(backend, strings.ToLower)

	return &models.RoleDiff{
		FrontendOnly: minus(fe, be),
		BackendOnly:  minus(be, fe),
	}
}

// CompareProperties diffs two property lists by normalized name and, where both sides
// declare a type, by type family.
func CompareProperties(frontend, backend []models.Property) *models.PropertyDiff {
	be := make(map[string]models.Property, len(backend))
	for _, p := range backend {
		key := shared.NormalizeKey(p.Name)
		if _, dup := be[key]; !dup {
			be[key] = p
		}
	}

	diff := &models.PropertyDiff{
		FrontendOnly:   []string{},
		BackendOnly:    []string{},
		TypeMismatches: []models.TypeMismatch{},
	}

	seen := make(map[string]bool, len(frontend))
	for _, p := range frontend {
		key := shared.NormalizeKey(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		other, ok := be[key]
		if !ok {
			diff.FrontendOnly = append(diff.FrontendOnly, p.Name)
			continue
		}
		if p.Type != "" && other.Type != "" && TypeFamily(p.Type) != TypeFamily(other.Type) {
			diff.TypeMismatches = append(diff.TypeMismatches, models.TypeMismatch{
				Property: p.Name,
				Frontend: p.Type,
				Backend:  other.Type,
			})
		}
	}

	for _, p := range backend {
		key := shared.NormalizeKey(p.Name)
		if !seen[key] {
			seen[key] = true
			diff.BackendOnly = append(diff.BackendOnly, p.Name)
		}
	}

	sort.Strings(diff.FrontendOnly)
	sort.Strings(diff.BackendOnly)
	return diff
}

var typeFamilies = map[string]string{
	"string": "string", "guid": "string", "uuid": "string", "char": "string", "text": "string",
	"number": "number", "int": "number", "integer": "number", "long": "number", "short": "number",
	"int32": "number", "int64": "number", "decimal": "number", "double": "number", "float": "number", "bigint": "number",
	"boolean": "boolean", "bool": "boolean",
	"date": "date", "datetime": "date", "datetimeoffset": "date", "timestamp": "date",
	"any": "any", "object": "any", "unknown": "any",
}

// TypeFamily maps TypeScript and C# type names onto a shared family so "number" and
// "int" compare equal. Nullable markers and generic/array wrappers are ignored;
// unknown names are compared by their normalized spelling.
func TypeFamily(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "?")
	t = strings.TrimSuffix(t, "[]")
	if open := strings.Index(t, "<"); open >= 0 && strings.HasSuffix(t, ">") {
		t = t[open+1 : len(t)-1]
	}
	t = strings.TrimPrefix(strings.TrimPrefix(t, "System."), "system.")

	key := shared.NormalizeKey(t)
	if family, ok := typeFamilies[key]; ok {
		return family
	}
	return key
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}

// toSet keys each trimmed, non-empty value by fold(value), keeping the first spelling seen.
func toSet(values []string, fold func(string) string) map[string]string {
	set := make(map[string]string, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := fold(v)
		if _, ok := set[key]; !ok {
			set[key] = v
		}
	}
	return set
}

// minus returns the sorted values of a whose keys are missing from b; never nil.
func minus(a, b map[string]string) []string {
	out := []string{}
	for k, v := range a {
		if _, ok := b[k]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// intersect returns the sorted keys present in both sets; never nil.
func intersect(a, b map[string]string) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
