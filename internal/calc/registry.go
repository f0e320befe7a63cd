package calc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ErrUnknownOperation is returned for a name with no registered operation.
var ErrUnknownOperation = errors.New("unknown operation")

// Env carries the evaluation settings an operation may need.
type Env struct {
	// Rounds is the number of random Miller-Rabin bases; zero selects the
	// size-dependent default.
	Rounds int
	// Source feeds random bases and random values. Nil selects the default
	// generator.
	Source bigint.RandomSource
}

// EvalFunc evaluates an operation over exactly Arity arguments.
type EvalFunc func(env Env, args []*bigint.Int) ([]*bigint.Int, error)

// Operation describes one named operation.
type Operation struct {
	Name  string
	Arity int
	Usage string
	Eval  EvalFunc
}

// Recorder receives the outcome of every evaluation. *metrics.Metrics
// satisfies it.
type Recorder interface {
	Observe(op string, d time.Duration, err error)
}

// OperationFactory is the read side of a registry.
type OperationFactory interface {
	Get(name string) (Operation, error)
	List() []string
}

// Registry is a concurrency-safe OperationFactory that also evaluates.
type Registry struct {
	mu       sync.RWMutex
	ops      map[string]Operation
	recorder Recorder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// NewDefaultRegistry returns a registry holding every built-in operation.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, op := range builtins() {
		r.Register(op)
	}
	return r
}

// SetRecorder installs rec; nil disables recording.
func (r *Registry) SetRecorder(rec Recorder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorder = rec
}

// Register adds or replaces op.
func (r *Registry) Register(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.Name] = op
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval runs the named operation. A wrong argument count is reported as an
// apperrors.ValidationError; engine failures come back wrapped in an
// apperrors.CalculationError carrying the operation name.
func (r *Registry) Eval(ctx context.Context, name string, env Env, args ...*bigint.Int) ([]*bigint.Int, error) {
	op, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if len(args) != op.Arity {
		return nil, apperrors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("expects %d argument(s), got %d (usage: %s)", op.Arity, len(args), op.Usage),
		}
	}
	if slices.Contains(args, nil) {
		return nil, apperrors.ValidationError{Field: name, Message: "nil argument"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	rec := r.recorder
	r.mu.RUnlock()

	start := time.Now()
	results, err := op.Eval(env, args)
	if err != nil {
		err = apperrors.CalculationError{Op: name, Cause: err}
	}
	if rec != nil {
		rec.Observe(name, time.Since(start), err)
	}
	return results, err
}
