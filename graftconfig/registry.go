package graftconfig

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/graftfn/graft"
)

// Registry maps names to the seeds and interceptors that unit configuration
// may refer to.  A Registry is safe for concurrent use and is typically
// populated once at program startup, before any units are built.
//
// Registration is strict: a nil value or a duplicate name is an error, so
// a misspelled registration surfaces where it happens rather than as a
// mysterious lookup failure later.
type Registry[S any] struct {
	mu    sync.RWMutex
	seeds map[string]any
	steps map[string]graft.StepInterceptor[S]
	pipes map[string]graft.PipelineInterceptor[S]
}

// NewRegistry returns an empty Registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{
		seeds: make(map[string]any),
		steps: make(map[string]graft.StepInterceptor[S]),
		pipes: make(map[string]graft.PipelineInterceptor[S]),
	}
}

// RegisterSeed adds a seed under the given name.  The value must at least
// be a function.  Full seed validation happens when a unit is built, since
// a registered function may still be rejected at that point, e.g. for
// being variadic.
func (r *Registry[S]) RegisterSeed(name string, seed any) error {
	if _, err := graft.Arity(seed); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seeds[name]; ok {
		return fmt.Errorf("a seed named %s is already registered", name)
	}

	r.seeds[name] = seed
	return nil
}

// RegisterStepInterceptor adds a step interceptor under the given name.
func (r *Registry[S]) RegisterStepInterceptor(name string, s graft.StepInterceptor[S]) error {
	if s == nil {
		return errors.New("a step interceptor cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.steps[name]; ok {
		return fmt.Errorf("a step interceptor named %s is already registered", name)
	}

	r.steps[name] = s
	return nil
}

// RegisterPipelineInterceptor adds a pipeline interceptor under the given name.
func (r *Registry[S]) RegisterPipelineInterceptor(name string, p graft.PipelineInterceptor[S]) error {
	if p == nil {
		return errors.New("a pipeline interceptor cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pipes[name]; ok {
		return fmt.Errorf("a pipeline interceptor named %s is already registered", name)
	}

	r.pipes[name] = p
	return nil
}

// Seed returns the seed registered under name, or false if there is none.
func (r *Registry[S]) Seed(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.seeds[name]
	return s, ok
}

// StepInterceptor returns the step interceptor registered under name,
// or false if there is none.
func (r *Registry[S]) StepInterceptor(name string) (graft.StepInterceptor[S], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.steps[name]
	return s, ok
}

// PipelineInterceptor returns the pipeline interceptor registered under
// name, or false if there is none.
func (r *Registry[S]) PipelineInterceptor(name string) (graft.PipelineInterceptor[S], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipes[name]
	return p, ok
}

// SeedNames returns the sorted names of all registered seeds.
func (r *Registry[S]) SeedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.seeds)
}

// StepInterceptorNames returns the sorted names of all registered step
// interceptors.
func (r *Registry[S]) StepInterceptorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.steps)
}

// PipelineInterceptorNames returns the sorted names of all registered
// pipeline interceptors.
func (r *Registry[S]) PipelineInterceptorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.pipes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
