package operations

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/models"
)

const (
	DesignToBackend     = "design_to_backend"
	DefaultBackendStack = ".NET Core"
)

// BackendTaskExtractor turns a design into backend tasks: controllers for API endpoints,
// then models for data models, then service-layer tasks.
type BackendTaskExtractor struct {
	stack  string
	logger *log.Logger
}

// NewBackendTaskExtractor creates the design_to_backend operation.
func NewBackendTaskExtractor(opts Options) *BackendTaskExtractor {
	stack := opts.BackendStack
	if stack == "" {
		stack = DefaultBackendStack
	}
	return &BackendTaskExtractor{stack: stack, logger: opts.logger(DesignToBackend)}
}

func (e *BackendTaskExtractor) Name() string { return DesignToBackend }

func (e *BackendTaskExtractor) Description() string {
	return fmt.Sprintf("Transforms architectural decisions into %s backend tasks", e.stack)
}

// Run decodes inputs["design"] and extracts the backend plan.
func (e *BackendTaskExtractor) Run(ctx context.Context, in Inputs) (any, error) {
	var design models.Design
	if err := in.Decode("design", &design); err != nil {
		return nil, err
	}
	return e.Extract(design), nil
}

// Extract builds the backend plan for design.
func (e *BackendTaskExtractor) Extract(design models.Design) *models.BackendPlan {
	tasks := make([]models.Task, 0, len(design.APIEndpoints)+len(design.DataModels)+len(design.Services))

	for _, ep := range design.APIEndpoints {
		tasks = append(tasks, models.NewControllerTask(ep))
	}
	for _, m := range design.DataModels {
		tasks = append(tasks, models.NewModelTask(m))
	}
	for _, s := range design.Services {
		tasks = append(tasks, models.NewServiceTask(s))
	}

	e.logger.Debug("extracted backend tasks",
		"controllers", len(design.APIEndpoints), "models", len(design.DataModels), "services", len(design.Services))

	return &models.BackendPlan{
		Tasks:        tasks,
		TechStack:    e.stack,
		Dependencies: design.BackendDependencies.Clone(),
	}
}
