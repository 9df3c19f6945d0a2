package operations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/shared"
)

// Inputs is the string-keyed mapping an operation receives.
type Inputs map[string]any

// ParseInputs decodes a JSON object into [Inputs].
func ParseInputs(data []byte) (Inputs, error) {
	in := Inputs{}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if in == nil {
		in = Inputs{}
	}
	return in, nil
}

// Decode decodes the value under key into v.
//
// A missing or null key leaves v untouched so callers get zero values (empty collections).
func (in Inputs) Decode(key string, v any) error {
	raw, ok := in[key]
	if !ok || raw == nil {
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrInvalidInput, key, err)
	}
	return nil
}

// Operation is a named, stateless transform from [Inputs] to a JSON-encodable result.
type Operation interface {
	Name() string                                    // Name is the key the operation is registered under
	Description() string                             // Description is shown by dispatchers and UIs
	Run(ctx context.Context, in Inputs) (any, error) // Run executes the operation
}

// Options configure the built-in operations.
type Options struct {
	FrontendStack string      // tech_stack reported by design_to_frontend
	BackendStack  string      // tech_stack reported by design_to_backend
	EscalateDiffs bool        // see [ImplementationReconciler]
	Logger        *log.Logger // debug logging; nil discards
}

// OptionsFromConfig maps the application config onto [Options].
func OptionsFromConfig(cfg *shared.Config, logger *log.Logger) Options {
	return Options{
		FrontendStack: cfg.Stack.Frontend,
		BackendStack:  cfg.Stack.Backend,
		EscalateDiffs: cfg.Reconcile.EscalateDiffs,
		Logger:        logger,
	}
}

func (o Options) logger(name string) *log.Logger {
	if o.Logger == nil {
		return shared.DiscardLogger()
	}
	return shared.WithLogger(o.Logger, "operation", name)
}

// Factory builds an [Operation] from [Options].
type Factory func(Options) Operation

// Descriptor is the metadata a dispatcher shows for an operation.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry maps operation names to factories. Operations are built once, on registration.
type Registry struct {
	mu         sync.RWMutex
	opts       Options
	operations map[string]Operation
}

// NewRegistry returns an empty registry whose factories will receive opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:       opts,
		operations: make(map[string]Operation),
	}
}

// NewDefaultRegistry returns a registry holding the three built-in operations.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry(opts)
	for _, f := range []Factory{
		func(o Options) Operation { return NewFrontendTaskExtractor(o) },
		func(o Options) Operation { return NewBackendTaskExtractor(o) },
		func(o Options) Operation { return NewImplementationReconciler(o) },
	} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// Register builds the operation from f and stores it under its name.
func (r *Registry) Register(f Factory) error {
	op := f(r.opts)
	name := op.Name()
	if name == "" {
		return fmt.Errorf("%w: operation name is empty", shared.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.operations[name]; exists {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateOperation, name)
	}
	r.operations[name] = op
	return nil
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownOperation, name)
	}
	return op, nil
}

// Describe lists every registered operation sorted by name.
func (r *Registry) Describe() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.operations))
	for _, op := range r.operations {
		out = append(out, Descriptor{Name: op.Name(), Description: op.Description()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
