package tasks

import (
	"fmt"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
)

// ProgressUpdate represents a progress event during a dispatch.
//
// Used to send real-time updates to the CLI or HTTP layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Dispatch phase enumeration
type Phase int

const (
	Resolve Phase = iota
	Execute
	Record
	Complete
	Plan
	Reconcile
	BatchJob
)

func (p Phase) String() string {
	switch p {
	case Resolve:
		return "resolve"
	case Execute:
		return "execute"
	case Record:
		return "record"
	case Complete:
		return "complete"
	case Plan:
		return "plan"
	case Reconcile:
		return "reconcile"
	case BatchJob:
		return "batch_job"
	default:
		return ""
	}
}

func resolveUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolve,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving operation %s...", name),
	}
}

func executeUpdate(op operations.Operation) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Execute,
		Step:    1,
		Total:   1,
		Message: op.Description() + "...",
	}
}

func recordUpdate(run *models.Run) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Record,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Recording %s run (%s)...", run.Operation(), run.Status()),
	}
}

func completeUpdate(run *models.Run) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%s finished in %s", run.Operation(), run.Duration()),
		Data:    run,
	}
}

func planUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Plan,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Planning with %s...", step, total, name),
	}
}

func reconcileUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reconciling frontend and backend...", step, total),
	}
}

func jobCompletedUpdate(step, total int, job Job) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchJob,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, job.ID, job.Operation),
	}
}

func jobFailedUpdate(step, total int, job Job, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchJob,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, job.ID, err),
	}
}
