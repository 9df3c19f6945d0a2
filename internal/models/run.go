package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RunStatus tracks where a [Run] is in its lifecycle.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Valid reports whether s is a known status.
func (s RunStatus) Valid() bool {
	switch s {
	case RunPending, RunRunning, RunSucceeded, RunFailed:
		return true
	}
	return false
}

// RunCounts summarizes an operation output for listing without decoding it.
type RunCounts struct {
	Tasks       int `json:"tasks"`
	Findings    int `json:"findings"`
	Adjustments int `json:"adjustments"`
	Critical    int `json:"critical"`
}

// Run is one recorded invocation of an operation.
type Run struct {
	id           string
	sequence     int
	operation    string
	status       RunStatus
	input        []byte
	output       []byte
	errorMessage string
	counts       RunCounts
	startedAt    *time.Time
	completedAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewRun creates a pending run for operation with its encoded input.
func NewRun(operation string, input []byte) *Run {
	now := time.Now()
	return &Run{
		operation: operation,
		status:    RunPending,
		input:     input,
		createdAt: now,
		updatedAt: now,
	}
}

// RunState is the full column set of a stored run, used when loading from storage.
type RunState struct {
	ID           string
	Sequence     int
	Operation    string
	Status       RunStatus
	Input        []byte
	Output       []byte
	ErrorMessage string
	Counts       RunCounts
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// RestoreRun rebuilds a run from stored state.
func RestoreRun(s RunState) *Run {
	return &Run{
		id:           s.ID,
		sequence:     s.Sequence,
		operation:    s.Operation,
		status:       s.Status,
		input:        s.Input,
		output:       s.Output,
		errorMessage: s.ErrorMessage,
		counts:       s.Counts,
		startedAt:    s.StartedAt,
		completedAt:  s.CompletedAt,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		deletedAt:    s.DeletedAt,
	}
}

func (r *Run) ID() string               { return r.id }
func (r *Run) Sequence() int            { return r.sequence }
func (r *Run) Operation() string        { return r.operation }
func (r *Run) Status() RunStatus        { return r.status }
func (r *Run) Input() []byte            { return r.input }
func (r *Run) Output() []byte           { return r.output }
func (r *Run) ErrorMessage() string     { return r.errorMessage }
func (r *Run) Counts() RunCounts        { return r.counts }
func (r *Run) StartedAt() *time.Time    { return r.startedAt }
func (r *Run) CompletedAt() *time.Time  { return r.completedAt }
func (r *Run) CreatedAt() time.Time     { return r.createdAt }
func (r *Run) UpdatedAt() time.Time     { return r.updatedAt }
func (r *Run) DeletedAt() *time.Time    { return r.deletedAt }
func (r *Run) SetID(id string)          { r.id = id }
func (r *Run) SetSequence(seq int)      { r.sequence = seq }
func (r *Run) SetUpdatedAt(t time.Time) { r.updatedAt = t }

// Duration returns how long the run took, or zero if it has not finished.
func (r *Run) Duration() time.Duration {
	if r.startedAt == nil || r.completedAt == nil {
		return 0
	}
	return r.completedAt.Sub(*r.startedAt)
}

// Start marks the run as running.
func (r *Run) Start() {
	now := time.Now()
	r.status = RunRunning
	r.startedAt = &now
	r.updatedAt = now
}

// Complete marks the run as succeeded with its encoded output and summary counts.
func (r *Run) Complete(output []byte, counts RunCounts) {
	now := time.Now()
	r.status = RunSucceeded
	r.output = output
	r.counts = counts
	r.completedAt = &now
	r.updatedAt = now
}

// Fail marks the run as failed with err's message.
func (r *Run) Fail(err error) {
	now := time.Now()
	r.status = RunFailed
	r.errorMessage = "unknown error"
	if err != nil {
		r.errorMessage = err.Error()
	}
	r.completedAt = &now
	r.updatedAt = now
}

// Validate implements [Model].
func (r *Run) Validate() error {
	if r.operation == "" {
		return fmt.Errorf("operation is required")
	}
	if !r.status.Valid() {
		return fmt.Errorf("invalid status %q", r.status)
	}
	if r.input == nil {
		return fmt.Errorf("input is required")
	}
	if r.status == RunFailed && r.errorMessage == "" {
		return fmt.Errorf("failed run requires an error message")
	}
	return nil
}

type runJSON struct {
	ID          string          `json:"id"`
	Sequence    int             `json:"sequence"`
	Operation   string          `json:"operation"`
	Status      RunStatus       `json:"status"`
	Error       string          `json:"error,omitempty"`
	Counts      RunCounts       `json:"counts"`
	DurationMS  int64           `json:"duration_ms"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Input       json.RawMessage `json:"input,omitempty"`
	Output      json.RawMessage `json:"output,omitempty"`
}

// MarshalJSON encodes the run with its stored input and output embedded as JSON.
func (r *Run) MarshalJSON() ([]byte, error) {
	v := runJSON{
		ID:          r.id,
		Sequence:    r.sequence,
		Operation:   r.operation,
		Status:      r.status,
		Error:       r.errorMessage,
		Counts:      r.counts,
		DurationMS:  r.Duration().Milliseconds(),
		StartedAt:   r.startedAt,
		CompletedAt: r.completedAt,
		CreatedAt:   r.createdAt,
	}
	if json.Valid(r.input) {
		v.Input = r.input
	}
	if json.Valid(r.output) {
		v.Output = r.output
	}
	return json.Marshal(v)
}
