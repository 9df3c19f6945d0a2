package operations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func TestFrontendTaskExtractor(t *testing.T) {
	ctx := context.Background()

	t.Run("empty design yields no tasks", func(t *testing.T) {
		for name, in := range map[string]Inputs{
			"no design key":  {},
			"null design":    {"design": nil},
			"empty design":   {"design": map[string]any{}},
			"unrelated keys": {"design": map[string]any{"data_models": []any{map[string]any{"name": "User"}}}},
		} {
			t.Run(name, func(t *testing.T) {
				out, err := NewFrontendTaskExtractor(Options{}).Run(ctx, in)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				plan := out.(*models.FrontendPlan)
				if len(plan.Tasks) != 0 {
					t.Errorf("expected no tasks, got %d", len(plan.Tasks))
				}
				if plan.TechStack != "Angular" {
					t.Errorf("expected tech stack Angular, got %s", plan.TechStack)
				}
			})
		}
	})

	t.Run("empty plan encodes empty lists", func(t *testing.T) {
		plan := NewFrontendTaskExtractor(Options{}).Extract(models.Design{})

		data, err := json.Marshal(plan)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		expected := `{"frontend_tasks":[],"tech_stack":"Angular","dependencies":[]}`
		if string(data) != expected {
			t.Errorf("expected %s, got %s", expected, data)
		}
	})

	t.Run("components then services in input order", func(t *testing.T) {
		in := Inputs{"design": map[string]any{
			"ui_components": []any{
				map[string]any{"name": "LoginForm"},
				map[string]any{"name": "Dashboard", "requirements": []any{"charts"}, "dependencies": []any{"UserService"}},
			},
			"api_endpoints": []any{
				map[string]any{"path": "/users", "method": "GET", "data_model": "User"},
				map[string]any{"path": "/orders", "method": "POST"},
			},
			"frontend_dependencies": []any{"@angular/material"},
		}}

		out, err := NewFrontendTaskExtractor(Options{}).Run(ctx, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		plan := out.(*models.FrontendPlan)

		expected := []models.Task{
			models.ComponentTask{Type: models.TaskComponent, Name: "LoginForm", Requirements: models.List{}, Dependencies: models.List{}},
			models.ComponentTask{Type: models.TaskComponent, Name: "Dashboard", Requirements: models.List{"charts"}, Dependencies: models.List{"UserService"}},
			models.ClientServiceTask{Type: models.TaskService, Endpoint: "/users", Method: "GET", DataModel: "User"},
			models.ClientServiceTask{Type: models.TaskService, Endpoint: "/orders", Method: "POST"},
		}
		if diff := cmp.Diff(expected, plan.Tasks); diff != "" {
			t.Errorf("tasks mismatch (-want +got):\n%s", diff)
		}

		if diff := cmp.Diff(models.List{"@angular/material"}, plan.Dependencies); diff != "" {
			t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("component count equals input count", func(t *testing.T) {
		design := models.Design{}
		for _, name := range []string{"A", "B", "C", "D", "E"} {
			design.UIComponents = append(design.UIComponents, models.UIComponent{Name: name})
		}

		plan := NewFrontendTaskExtractor(Options{}).Extract(design)
		if len(plan.Tasks) != 5 {
			t.Fatalf("expected 5 tasks, got %d", len(plan.Tasks))
		}
		for i, task := range plan.Tasks {
			if got := task.(models.ComponentTask).Name; got != design.UIComponents[i].Name {
				t.Errorf("task %d: expected %s, got %s", i, design.UIComponents[i].Name, got)
			}
		}
	})

	t.Run("missing fields are omitted", func(t *testing.T) {
		plan := NewFrontendTaskExtractor(Options{}).Extract(models.Design{
			APIEndpoints: []models.EndpointSpec{{Method: "GET"}},
		})

		data, err := json.Marshal(plan.Tasks[0])
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"type":"service","method":"GET"}` {
			t.Errorf("unexpected encoding: %s", data)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := Inputs{"design": map[string]any{
			"ui_components": []any{map[string]any{"name": "Profile", "requirements": []any{map[string]any{"field": "avatar"}}}},
			"api_endpoints": []any{map[string]any{"path": "/profile", "method": "PUT"}},
		}}
		op := NewFrontendTaskExtractor(Options{})

		first, _ := op.Run(ctx, in)
		second, _ := op.Run(ctx, in)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("re-running changed output (-first +second):\n%s", diff)
		}
	})

	t.Run("tasks do not alias the design", func(t *testing.T) {
		design := models.Design{
			UIComponents: []models.UIComponent{{Name: "Cart", Requirements: models.List{"badge"}}},
		}
		plan := NewFrontendTaskExtractor(Options{}).Extract(design)

		design.UIComponents[0].Requirements[0] = "changed"

		if got := plan.Tasks[0].(models.ComponentTask).Requirements[0]; got != "badge" {
			t.Errorf("expected task to keep its own copy, got %v", got)
		}
	})

	t.Run("custom tech stack", func(t *testing.T) {
		op := NewFrontendTaskExtractor(Options{FrontendStack: "React"})

		if plan := op.Extract(models.Design{}); plan.TechStack != "React" {
			t.Errorf("expected React, got %s", plan.TechStack)
		}
		if op.Description() != "Transforms architectural decisions into React frontend tasks" {
			t.Errorf("unexpected description: %s", op.Description())
		}
	})

	t.Run("malformed design", func(t *testing.T) {
		_, err := NewFrontendTaskExtractor(Options{}).Run(ctx, Inputs{"design": "not a mapping"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
