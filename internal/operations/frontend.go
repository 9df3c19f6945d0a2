package operations

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/models"
)

const (
	DesignToFrontend     = "design_to_frontend"
	DefaultFrontendStack = "Angular"
)

// FrontendTaskExtractor turns a design into frontend tasks: one component task per UI
// component followed by one client service task per API endpoint.
type FrontendTaskExtractor struct {
	stack  string
	logger *log.Logger
}

// NewFrontendTaskExtractor creates the design_to_frontend operation.
func NewFrontendTaskExtractor(opts Options) *FrontendTaskExtractor {
	stack := opts.FrontendStack
	if stack == "" {
		stack = DefaultFrontendStack
	}
	return &FrontendTaskExtractor{stack: stack, logger: opts.logger(DesignToFrontend)}
}

func (e *FrontendTaskExtractor) Name() string { return DesignToFrontend }

func (e *FrontendTaskExtractor) Description() string {
	return fmt.Sprintf("Transforms architectural decisions into %s frontend tasks", e.stack)
}

// Run decodes inputs["design"] and extracts the frontend plan.
func (e *FrontendTaskExtractor) Run(ctx context.Context, in Inputs) (any, error) {
	var design models.Design
	if err := in.Decode("design", &design); err != nil {
		return nil, err
	}
	return e.Extract(design), nil
}

// Extract builds the frontend plan for design. Input order is preserved and nothing is
// validated or deduplicated.
func (e *FrontendTaskExtractor) Extract(design models.Design) *models.FrontendPlan {
	tasks := make([]models.Task, 0, len(design.UIComponents)+len(design.APIEndpoints))

	for _, c := range design.UIComponents {
		tasks = append(tasks, models.NewComponentTask(c))
	}
	for _, ep := range design.APIEndpoints {
		tasks = append(tasks, models.NewClientServiceTask(ep))
	}

	e.logger.Debug("extracted frontend tasks",
		"components", len(design.UIComponents), "services", len(design.APIEndpoints))

	return &models.FrontendPlan{
		Tasks:        tasks,
		TechStack:    e.stack,
		Dependencies: design.FrontendDependencies.Clone(),
	}
}
