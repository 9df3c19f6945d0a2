package tasks

import (
	"context"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
)

// PipelineResult collects the outputs of one [Pipeline.Run].
type PipelineResult struct {
	Frontend *models.FrontendPlan `json:"frontend"`
	Backend  *models.BackendPlan  `json:"backend"`
	Sync     *models.SyncReport   `json:"sync,omitempty"`
	Runs     []*models.Run        `json:"-"`
}

// Pipeline plans both sides of one design and, when implementation summaries are
// present, reconciles them.
type Pipeline struct {
	dispatcher *Dispatcher
}

// NewPipeline creates a Pipeline on top of d.
func NewPipeline(d *Dispatcher) *Pipeline {
	return &Pipeline{dispatcher: d}
}

// Run dispatches design_to_frontend and design_to_backend with inputs["design"], then
// frontend_backend_sync when inputs carries frontend_implementation or backend_implementation.
//
// The first failing step stops the pipeline; outputs of earlier steps are kept in the result.
func (p *Pipeline) Run(ctx context.Context, in operations.Inputs, progress chan<- ProgressUpdate) (*PipelineResult, error) {
	_, hasFrontend := in["frontend_implementation"]
	_, hasBackend := in["backend_implementation"]
	reconcile := hasFrontend || hasBackend

	total := 2
	if reconcile {
		total = 3
	}

	result := &PipelineResult{}
	design := operations.Inputs{"design": in["design"]}

	sendProgress(progress, planUpdate(1, total, operations.DesignToFrontend))
	res, err := p.dispatcher.Dispatch(ctx, operations.DesignToFrontend, design, progress)
	if res != nil {
		result.Runs = append(result.Runs, res.Run)
	}
	if err != nil {
		return result, err
	}
	result.Frontend, _ = res.Output.(*models.FrontendPlan)

	sendProgress(progress, planUpdate(2, total, operations.DesignToBackend))
	res, err = p.dispatcher.Dispatch(ctx, operations.DesignToBackend, design, progress)
	if res != nil {
		result.Runs = append(result.Runs, res.Run)
	}
	if err != nil {
		return result, err
	}
	result.Backend, _ = res.Output.(*models.BackendPlan)

	if !reconcile {
		return result, nil
	}

	sendProgress(progress, reconcileUpdate(3, total))
	res, err = p.dispatcher.Dispatch(ctx, operations.FrontendBackendSync, operations.Inputs{
		"frontend_implementation": in["frontend_implementation"],
		"backend_implementation":  in["backend_implementation"],
	}, progress)
	if res != nil {
		result.Runs = append(result.Runs, res.Run)
	}
	if err != nil {
		return result, err
	}
	result.Sync, _ = res.Output.(*models.SyncReport)

	return result, nil
}
