package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
)

// RunRecorder persists runs. Begin is called before the operation executes and Finish after it completes or fails.
type RunRecorder interface {
	Begin(run *models.Run) error
	Finish(run *models.Run) error
}

// DispatchResult holds the operation output and the run that recorded it.
type DispatchResult struct {
	Run    *models.Run
	Output any
}

// Dispatcher resolves operations by name and runs them.
type Dispatcher struct {
	registry *operations.Registry
	recorder RunRecorder
	logger   *log.Logger
}

// NewDispatcher creates a Dispatcher. recorder and logger may be nil.
func NewDispatcher(registry *operations.Registry, recorder RunRecorder, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Dispatcher{registry: registry, recorder: recorder, logger: logger}
}

// Registry returns the registry operations are resolved from.
func (d *Dispatcher) Registry() *operations.Registry {
	return d.registry
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Dispatch runs the operation registered under name.
//
// Unknown names fail before a run is recorded. Once resolved, the run is recorded whether
// the operation succeeds or not, and the operation's own error is returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, in operations.Inputs, progress chan<- ProgressUpdate) (*DispatchResult, error) {
	sendProgress(progress, resolveUpdate(name))

	op, err := d.registry.Get(name)
	if err != nil {
		return nil, err
	}

	if in == nil {
		in = operations.Inputs{}
	}
	input, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode inputs: %v", shared.ErrInvalidInput, err)
	}

	run := models.NewRun(name, input)
	d.begin(run)

	run.Start()
	sendProgress(progress, executeUpdate(op))

	output, err := d.execute(ctx, op, in)
	if err != nil {
		run.Fail(err)
		d.finish(run, progress)
		d.logger.Warn("operation failed", "operation", name, "error", err)
		return &DispatchResult{Run: run}, err
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		err = fmt.Errorf("%w: failed to encode output: %v", shared.ErrOperationFailed, err)
		run.Fail(err)
		d.finish(run, progress)
		return &DispatchResult{Run: run}, err
	}

	var counts models.RunCounts
	if c, ok := output.(models.Counter); ok {
		counts = c.Counts()
	}
	run.Complete(encoded, counts)
	d.finish(run, progress)

	d.logger.Debug("operation completed", "operation", name, "duration", run.Duration(), "counts", counts)
	sendProgress(progress, completeUpdate(run))

	return &DispatchResult{Run: run, Output: output}, nil
}

func (d *Dispatcher) execute(ctx context.Context, op operations.Operation, in operations.Inputs) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return op.Run(ctx, in)
}

// begin records a run silently. A recorder failure never affects the dispatch.
func (d *Dispatcher) begin(run *models.Run) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Begin(run); err != nil {
		d.logger.Warn("failed to record run start", "operation", run.Operation(), "error", err)
	}
}

func (d *Dispatcher) finish(run *models.Run, progress chan<- ProgressUpdate) {
	if d.recorder == nil {
		return
	}
	sendProgress(progress, recordUpdate(run))
	if err := d.recorder.Finish(run); err != nil {
		d.logger.Warn("failed to record run result", "operation", run.Operation(), "run", run.ID(), "error", err)
	}
}
