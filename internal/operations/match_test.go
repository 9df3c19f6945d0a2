package operations

import (
	"testing"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestMatchEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		service   models.APIService
		endpoints []models.ImplementedEndpoint
		want      string
		ok        bool
	}{
		{
			name:      "service name to plural path",
			service:   models.APIService{Name: "UserService"},
			endpoints: []models.ImplementedEndpoint{{Path: "/users"}},
			want:      "/users",
			ok:        true,
		},
		{
			name:      "api and version prefixes are skipped",
			service:   models.APIService{Name: "UserService"},
			endpoints: []models.ImplementedEndpoint{{Path: "/api/v1/users/{id}"}},
			want:      "/api/v1/users/{id}",
			ok:        true,
		},
		{
			name:      "ies plural",
			service:   models.APIService{Name: "CategoryService"},
			endpoints: []models.ImplementedEndpoint{{Path: "/categories"}},
			want:      "/categories",
			ok:        true,
		},
		{
			name:      "sses plural",
			service:   models.APIService{Name: "AddressClient"},
			endpoints: []models.ImplementedEndpoint{{Path: "/addresses"}},
			want:      "/addresses",
			ok:        true,
		},
		{
			name:      "endpoint without path matches by name",
			service:   models.APIService{Name: "OrderApi"},
			endpoints: []models.ImplementedEndpoint{{Name: "OrdersController"}},
			want:      "",
			ok:        true,
		},
		{
			name:      "declared path matches normalized path",
			service:   models.APIService{Name: "Anything", Path: "/api/users/:id"},
			endpoints: []models.ImplementedEndpoint{{Path: "/users"}, {Path: "/users/{userId}"}},
			want:      "/users/{userId}",
			ok:        true,
		},
		{
			name:      "declared path does not fall back to names",
			service:   models.APIService{Name: "UserService", Path: "/profiles"},
			endpoints: []models.ImplementedEndpoint{{Path: "/users"}},
			ok:        false,
		},
		{
			name:      "first match wins",
			service:   models.APIService{Name: "UserService"},
			endpoints: []models.ImplementedEndpoint{{Path: "/orders"}, {Path: "/users"}, {Path: "/users/{id}"}},
			want:      "/users",
			ok:        true,
		},
		{
			name:      "unrelated resources",
			service:   models.APIService{Name: "UserService"},
			endpoints: []models.ImplementedEndpoint{{Path: "/user-profiles"}},
			ok:        false,
		},
		{
			name:      "empty keys never match",
			service:   models.APIService{},
			endpoints: []models.ImplementedEndpoint{{}},
			ok:        false,
		},
		{
			name:    "no endpoints",
			service: models.APIService{Name: "UserService"},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchEndpoint(tt.service, tt.endpoints)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got.Path != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Path)
			}
		})
	}
}

func TestModelKey(t *testing.T) {
	for input, want := range map[string]string{
		"User":       "user",
		"UserDto":    "user",
		"user_model": "user",
		"UserEntity": "user",
		"Dto":        "dto",
		"OrderLine":  "orderline",
	} {
		if got := ModelKey(input); got != want {
			t.Errorf("ModelKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMatchModel(t *testing.T) {
	candidates := []models.ModelSpec{{Name: "Order"}, {Name: "User"}, {Name: "UserEntity"}}

	t.Run("normalized name", func(t *testing.T) {
		got, ok := MatchModel(models.ModelSpec{Name: "UserDto"}, candidates)
		if !ok || got.Name != "User" {
			t.Errorf("expected User, got %q (ok=%v)", got.Name, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := MatchModel(models.ModelSpec{Name: "Invoice"}, candidates); ok {
			t.Error("expected no match")
		}
	})

	t.Run("unnamed model", func(t *testing.T) {
		if _, ok := MatchModel(models.ModelSpec{}, []models.ModelSpec{{}}); ok {
			t.Error("expected no match for empty names")
		}
	})
}

func TestCompareMethods(t *testing.T) {
	got := CompareMethods([]string{"get", "Post", " "}, []string{"GET", "PUT", "put"})
	expected := &models.MethodDiff{
		FrontendOnly: []string{"POST"},
		BackendOnly:  []string{"PUT"},
		Common:       []string{"GET"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}

	if empty := CompareMethods(nil, nil); !empty.Empty() || empty.Common == nil {
		t.Errorf("expected empty diff with non-nil lists, got %#v", empty)
	}
}

func TestResourceKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"UserService", "user"},
		{"OrdersController", "orders"},
		{"PaymentClient", "payment"},
		{"InvoiceResource", "invoice"},
		{"ProductApi", "product"},
		{"productAPI", "product"},
		{"user_service", "user"},
		{" Users ", "users"},
		{"Service", "service"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResourceKey(tt.name); got != tt.want {
				t.Errorf("ResourceKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCompareRoles(t *testing.T) {
	tests := []struct {
		name     string
		frontend []string
		backend  []string
		want     *models.RoleDiff
	}{
		{
			name:     "case is ignored, spelling is kept",
			frontend: []string{"Admin", "user"},
			backend:  []string{"admin", "Editor"},
			want:     &models.RoleDiff{FrontendOnly: []string{"user"}, BackendOnly: []string{"Editor"}},
		},
		{
			name:     "values are trimmed and blanks dropped",
			frontend: []string{" Admin ", ""},
			backend:  []string{"ADMIN", "  "},
			want:     &models.RoleDiff{FrontendOnly: []string{}, BackendOnly: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CompareRoles(tt.frontend, tt.backend)); diff != "" {
				t.Errorf("diff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareProperties(t *testing.T) {
	tests := []struct {
		name     string
		frontend []models.Property
		backend  []models.Property
		want     *models.PropertyDiff
	}{
		{
			name:     "names compare after normalization",
			frontend: []models.Property{{Name: "id", Type: "number"}, {Name: "firstName", Type: "string"}, {Name: "email"}},
			backend:  []models.Property{{Name: "Id", Type: "int"}, {Name: "FirstName", Type: "string"}, {Name: "CreatedAt", Type: "DateTime"}},
			want: &models.PropertyDiff{
				FrontendOnly:   []string{"email"},
				BackendOnly:    []string{"CreatedAt"},
				TypeMismatches: []models.TypeMismatch{},
			},
		},
		{
			name:     "incompatible types",
			frontend: []models.Property{{Name: "age", Type: "string"}},
			backend:  []models.Property{{Name: "Age", Type: "int?"}},
			want: &models.PropertyDiff{
				FrontendOnly:   []string{},
				BackendOnly:    []string{},
				TypeMismatches: []models.TypeMismatch{{Property: "age", Frontend: "string", Backend: "int?"}},
			},
		},
		{
			name:     "untyped side is compatible",
			frontend: []models.Property{{Name: "age"}},
			backend:  []models.Property{{Name: "age", Type: "long"}},
			want: &models.PropertyDiff{
				FrontendOnly:   []string{},
				BackendOnly:    []string{},
				TypeMismatches: []models.TypeMismatch{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CompareProperties(tt.frontend, tt.backend)); diff != "" {
				t.Errorf("diff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeFamily(t *testing.T) {
	for input, want := range map[string]string{
		"number":        "number",
		"int?":          "number",
		"List<int>":     "number",
		"string[]":      "string",
		"System.Guid":   "string",
		"DateTime":      "date",
		"bool":          "boolean",
		"Address":       "address",
		"Array<string>": "string",
	} {
		if got := TypeFamily(input); got != want {
			t.Errorf("TypeFamily(%q) = %q, want %q", input, got, want)
		}
	}
}
