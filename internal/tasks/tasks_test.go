package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
)

type mockRecorder struct {
	mu        sync.Mutex
	begun     []*models.Run
	finished  []*models.Run
	beginErr  error
	finishErr error
}

func (m *mockRecorder) Begin(run *models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beginErr != nil {
		return m.beginErr
	}
	run.SetID(fmt.Sprintf("run-%d", len(m.begun)+1))
	m.begun = append(m.begun, run)
	return nil
}

func (m *mockRecorder) Finish(run *models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finishErr != nil {
		return m.finishErr
	}
	m.finished = append(m.finished, run)
	return nil
}

// mockOperation returns output or err and counts its invocations.
type mockOperation struct {
	name   string
	output any
	err    error
	mu     sync.Mutex
	calls  int
}

func (m *mockOperation) Name() string        { return m.name }
func (m *mockOperation) Description() string { return "mock " + m.name }
func (m *mockOperation) Run(ctx context.Context, in operations.Inputs) (any, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.output, m.err
}

func newRegistry(t *testing.T, ops ...operations.Operation) *operations.Registry {
	t.Helper()
	r := operations.NewDefaultRegistry(operations.Options{})
	for _, op := range ops {
		if err := r.Register(func(operations.Options) operations.Operation { return op }); err != nil {
			t.Fatalf("failed to register %s: %v", op.Name(), err)
		}
	}
	return r
}

func drain(progress chan ProgressUpdate) []ProgressUpdate {
	close(progress)
	var updates []ProgressUpdate
	for u := range progress {
		updates = append(updates, u)
	}
	return updates
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("successful dispatch records run", func(t *testing.T) {
		recorder := &mockRecorder{}
		d := NewDispatcher(newRegistry(t), recorder, nil)
		progress := make(chan ProgressUpdate, 20)

		in := operations.Inputs{
			"frontend_implementation": map[string]any{"api_services": []any{map[string]any{"name": "OrderService"}}},
		}
		res, err := d.Dispatch(ctx, operations.FrontendBackendSync, in, progress)
		if err != nil {
			t.Fatalf("Dispatch() unexpected error: %v", err)
		}

		report, ok := res.Output.(*models.SyncReport)
		if !ok {
			t.Fatalf("expected *models.SyncReport, got %T", res.Output)
		}
		if len(report.Adjustments.Backend) != 1 {
			t.Errorf("expected 1 backend adjustment, got %d", len(report.Adjustments.Backend))
		}

		run := res.Run
		if run.Status() != models.RunSucceeded {
			t.Errorf("expected succeeded, got %s", run.Status())
		}
		if run.ID() != "run-1" {
			t.Errorf("expected recorder to assign ID, got %q", run.ID())
		}
		if run.Counts() != (models.RunCounts{Findings: 1, Adjustments: 1}) {
			t.Errorf("unexpected counts: %+v", run.Counts())
		}
		if len(run.Output()) == 0 {
			t.Error("expected encoded output on run")
		}
		if len(recorder.begun) != 1 || len(recorder.finished) != 1 {
			t.Errorf("expected one begin and one finish, got %d/%d", len(recorder.begun), len(recorder.finished))
		}

		phases := map[Phase]bool{}
		for _, u := range drain(progress) {
			phases[u.Phase] = true
		}
		for _, p := range []Phase{Resolve, Execute, Record, Complete} {
			if !phases[p] {
				t.Errorf("expected a %s update", p)
			}
		}
	})

	t.Run("plan outputs count tasks", func(t *testing.T) {
		d := NewDispatcher(newRegistry(t), nil, nil)
		in := operations.Inputs{"design": map[string]any{
			"ui_components": []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}},
		}}

		res, err := d.Dispatch(ctx, operations.DesignToFrontend, in, nil)
		if err != nil {
			t.Fatalf("Dispatch() unexpected error: %v", err)
		}
		if res.Run.Counts().Tasks != 2 {
			t.Errorf("expected 2 tasks, got %d", res.Run.Counts().Tasks)
		}
	})

	t.Run("unknown operation is not recorded", func(t *testing.T) {
		recorder := &mockRecorder{}
		d := NewDispatcher(newRegistry(t), recorder, nil)

		res, err := d.Dispatch(ctx, "deploy", operations.Inputs{}, nil)
		if !errors.Is(err, shared.ErrUnknownOperation) {
			t.Errorf("expected ErrUnknownOperation, got %v", err)
		}
		if res != nil {
			t.Errorf("expected nil result, got %+v", res)
		}
		if len(recorder.begun) != 0 {
			t.Error("expected no recorded run")
		}
	})

	t.Run("invalid input fails the run", func(t *testing.T) {
		recorder := &mockRecorder{}
		d := NewDispatcher(newRegistry(t), recorder, nil)

		res, err := d.Dispatch(ctx, operations.DesignToBackend, operations.Inputs{"design": "oops"}, nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if res == nil || res.Run.Status() != models.RunFailed {
			t.Fatalf("expected failed run, got %+v", res)
		}
		if res.Run.ErrorMessage() == "" {
			t.Error("expected error message on failed run")
		}
		if len(recorder.finished) != 1 {
			t.Errorf("expected failed run to be recorded, got %d", len(recorder.finished))
		}
	})

	t.Run("recorder errors are ignored", func(t *testing.T) {
		recorder := &mockRecorder{beginErr: errors.New("disk full"), finishErr: errors.New("disk full")}
		d := NewDispatcher(newRegistry(t), recorder, nil)

		res, err := d.Dispatch(ctx, operations.DesignToFrontend, nil, nil)
		if err != nil {
			t.Fatalf("Dispatch() unexpected error: %v", err)
		}
		if res.Run.Status() != models.RunSucceeded {
			t.Errorf("expected succeeded, got %s", res.Run.Status())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		op := &mockOperation{name: "noop", output: map[string]any{}}
		d := NewDispatcher(newRegistry(t, op), nil, nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := d.Dispatch(cancelled, "noop", nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if op.calls != 0 {
			t.Errorf("expected operation not to run, got %d calls", op.calls)
		}
	})

	t.Run("unencodable output", func(t *testing.T) {
		op := &mockOperation{name: "broken", output: make(chan int)}
		d := NewDispatcher(newRegistry(t, op), nil, nil)

		res, err := d.Dispatch(ctx, "broken", nil, nil)
		if !errors.Is(err, shared.ErrOperationFailed) {
			t.Errorf("expected ErrOperationFailed, got %v", err)
		}
		if res.Run.Status() != models.RunFailed {
			t.Errorf("expected failed run, got %s", res.Run.Status())
		}
	})

	t.Run("full progress channel does not block", func(t *testing.T) {
		d := NewDispatcher(newRegistry(t), &mockRecorder{}, nil)
		progress := make(chan ProgressUpdate)

		if _, err := d.Dispatch(ctx, operations.DesignToFrontend, nil, progress); err != nil {
			t.Fatalf("Dispatch() unexpected error: %v", err)
		}
	})
}

func TestDispatcher_Batch(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed results keep job order", func(t *testing.T) {
		failing := &mockOperation{name: "failing", err: fmt.Errorf("%w: bad", shared.ErrInvalidInput)}
		d := NewDispatcher(newRegistry(t, failing), &mockRecorder{}, nil)

		jobs := []Job{
			{ID: "a.json", Operation: operations.DesignToFrontend},
			{ID: "b.json", Operation: "failing"},
			{ID: "c.json", Operation: operations.DesignToBackend},
			{ID: "d.json", Operation: "missing"},
			{ID: "e.json", Operation: operations.FrontendBackendSync},
		}
		progress := make(chan ProgressUpdate, 20)

		res, err := d.Batch(ctx, progress, jobs, BatchOpts{NumWorkers: 3})
		if err != nil {
			t.Fatalf("Batch() unexpected error: %v", err)
		}

		if res.Total != 5 || res.Succeeded != 3 || res.Failed != 2 {
			t.Errorf("unexpected summary: total=%d succeeded=%d failed=%d", res.Total, res.Succeeded, res.Failed)
		}
		for i, r := range res.Results {
			if r.Job.ID != jobs[i].ID {
				t.Errorf("result %d: expected %s, got %s", i, jobs[i].ID, r.Job.ID)
			}
		}
		if !errors.Is(res.Results[3].Err, shared.ErrUnknownOperation) {
			t.Errorf("expected ErrUnknownOperation for d.json, got %v", res.Results[3].Err)
		}

		if updates := drain(progress); len(updates) != 5 {
			t.Errorf("expected one update per job, got %d", len(updates))
		}
	})

	t.Run("worker bounds", func(t *testing.T) {
		op := &mockOperation{name: "count", output: map[string]any{}}
		d := NewDispatcher(newRegistry(t, op), nil, nil)

		jobs := make([]Job, 25)
		for i := range jobs {
			jobs[i] = Job{ID: fmt.Sprint(i), Operation: "count"}
		}

		for _, workers := range []int{-1, 0, 1, 50} {
			op.calls = 0
			res, err := d.Batch(ctx, nil, jobs, BatchOpts{NumWorkers: workers, RateLimit: 1000})
			if err != nil {
				t.Fatalf("workers=%d: unexpected error: %v", workers, err)
			}
			if res.Succeeded != len(jobs) || op.calls != len(jobs) {
				t.Errorf("workers=%d: expected %d runs, got %d (calls %d)", workers, len(jobs), res.Succeeded, op.calls)
			}
		}
	})

	t.Run("cancelled batch returns partial result", func(t *testing.T) {
		d := NewDispatcher(newRegistry(t), nil, nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		res, err := d.Batch(cancelled, nil, []Job{{ID: "a", Operation: operations.DesignToFrontend}}, BatchOpts{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if res.Total != 1 || len(res.Results) != 0 {
			t.Errorf("expected no results, got %+v", res)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		res, err := NewDispatcher(newRegistry(t), nil, nil).Batch(ctx, nil, nil, BatchOpts{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Total != 0 || len(res.Results) != 0 {
			t.Errorf("expected empty result, got %+v", res)
		}
	})
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	design := map[string]any{
		"ui_components": []any{map[string]any{"name": "UserList"}},
		"api_endpoints": []any{map[string]any{"path": "/users", "method": "GET"}},
		"data_models":   []any{map[string]any{"name": "User"}},
	}

	t.Run("plans only without implementations", func(t *testing.T) {
		recorder := &mockRecorder{}
		p := NewPipeline(NewDispatcher(newRegistry(t), recorder, nil))

		res, err := p.Run(ctx, operations.Inputs{"design": design}, nil)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		if len(res.Frontend.Tasks) != 2 {
			t.Errorf("expected 2 frontend tasks, got %d", len(res.Frontend.Tasks))
		}
		if len(res.Backend.Tasks) != 2 {
			t.Errorf("expected 2 backend tasks, got %d", len(res.Backend.Tasks))
		}
		if res.Sync != nil {
			t.Error("expected no sync report")
		}
		if len(res.Runs) != 2 || len(recorder.finished) != 2 {
			t.Errorf("expected 2 runs, got %d (recorded %d)", len(res.Runs), len(recorder.finished))
		}
	})

	t.Run("reconciles when an implementation is present", func(t *testing.T) {
		p := NewPipeline(NewDispatcher(newRegistry(t), nil, nil))
		progress := make(chan ProgressUpdate, 50)

		res, err := p.Run(ctx, operations.Inputs{
			"design":                 design,
			"backend_implementation": map[string]any{"security_config": map[string]any{"mechanism": "JWT"}},
		}, progress)
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		if res.Sync == nil {
			t.Fatal("expected sync report")
		}
		if len(res.Sync.Adjustments.Critical) != 1 {
			t.Errorf("expected 1 critical adjustment, got %d", len(res.Sync.Adjustments.Critical))
		}
		if len(res.Runs) != 3 {
			t.Errorf("expected 3 runs, got %d", len(res.Runs))
		}

		var reconciled bool
		for _, u := range drain(progress) {
			if u.Phase == Reconcile && u.Step == 3 && u.Total == 3 {
				reconciled = true
			}
		}
		if !reconciled {
			t.Error("expected a reconcile progress update")
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		p := NewPipeline(NewDispatcher(newRegistry(t), nil, nil))

		res, err := p.Run(ctx, operations.Inputs{"design": []any{"not", "a", "design"}}, nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(res.Runs) != 1 || res.Frontend != nil {
			t.Errorf("expected a single failed run and no plans, got %+v", res)
		}
	})
}

func TestPhaseString(t *testing.T) {
	for phase, want := range map[Phase]string{
		Resolve:   "resolve",
		Execute:   "execute",
		Record:    "record",
		Complete:  "complete",
		Plan:      "plan",
		Reconcile: "reconcile",
		BatchJob:  "batch_job",
		Phase(99): "",
	} {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
