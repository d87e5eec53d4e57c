package graft

import (
	"fmt"
	"reflect"
)

// ArityMismatchError indicates that a branch, curried with its
// prebound values, did not come out awaiting exactly one value.  One
// unfilled slot is the branch contract: it is where the pipeline
// state lands on every invocation.
type ArityMismatchError struct {
	Pipeline  string
	Branch    int
	Type      reflect.Type
	Remaining int
}

// Error satisfies the error interface
func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf(
		"pipeline %s: branch %d over %s awaits %d values: every branch must await exactly one",
		e.Pipeline, e.Branch, e.Type, e.Remaining,
	)
}

// BranchSpec declares one branch of a pipeline: a seed plus the values
// to prebind, oldest first.
type BranchSpec struct {
	Seed     any
	Prebound []any
}

// Branch builds a BranchSpec, for literal declaration sites.
func Branch(seed any, prebound ...any) BranchSpec {
	return BranchSpec{Seed: seed, Prebound: prebound}
}

// Pipeline is a compiled composition over a state type S.  All
// currying, validation, and interceptor wrapping happen once, in
// Compose.  A Pipeline is immutable and safe to invoke any number of
// times.
type Pipeline[S any] struct {
	name     string
	invoke   Transform[S]
	branches int
}

// Compose builds a pipeline in five steps, all at definition time:
//
// (1) Each branch's seed is curried with its prebound values and must
// come out awaiting exactly one value, else composition fails with
// ArityMismatchError.
//
// (2) Where the state type S makes it statically decidable, each
// seed's first parameter must accept S and each seed's result must be
// usable as S.  Interface types on either side defer that check to
// invocation, where the dynamic value decides.
//
// (3) Step interceptors wrap every branch transform.  Wrapping
// iterates in reverse declaration order, so the first declared
// interceptor is outermost at run time: declared [a, b], execution is
// a(b(branch)).
//
// (4) The wrapped branches fold left to right in declared order: the
// state out of branch i feeds branch i+1.  No branches fold to the
// identity.
//
// (5) Pipeline interceptors wrap the folded reducer, under the same
// reverse rule as step interceptors.
//
// Compose does not run interceptor Init; that protocol belongs to the
// owning unit, or to InitInterceptors for direct callers.
func Compose[S any](name string, branches []BranchSpec, steps []StepInterceptor[S], pipes []PipelineInterceptor[S]) (*Pipeline[S], error) {
	state := Type[S]()
	wrapped := make([]Transform[S], 0, len(branches))

	for i, spec := range branches {
		chain, err := Sow(spec.Seed, spec.Prebound...)
		if err != nil {
			return nil, fmt.Errorf("pipeline %s: branch %d: %w", name, i, err)
		}

		if remaining := chain.Remaining(); remaining != 1 {
			return nil, &ArityMismatchError{
				Pipeline:  name,
				Branch:    i,
				Type:      chain.Seed(),
				Remaining: remaining,
			}
		}

		if err := checkStateFlow(chain.Seed(), state); err != nil {
			return nil, fmt.Errorf("pipeline %s: branch %d: %w", name, i, err)
		}

		branch, err := wrapTransform(name, StepKind, bloomTransform[S](chain), steps)
		if err != nil {
			return nil, err
		}

		wrapped = append(wrapped, branch)
	}

	reduce, err := wrapTransform(name, PipelineKind, reduceTransform(wrapped), pipes)
	if err != nil {
		return nil, err
	}

	return &Pipeline[S]{
		name:     name,
		invoke:   reduce,
		branches: len(branches),
	}, nil
}

// Invoke runs the fully wrapped chain on initial and returns the
// final state.  Compose did all construction work; Invoke repeats
// none of it.
func (p *Pipeline[S]) Invoke(initial S) S {
	return p.invoke(initial)
}

// Name returns the pipeline's declared name.
func (p *Pipeline[S]) Name() string {
	return p.name
}

// Branches returns the number of declared branches.
func (p *Pipeline[S]) Branches() int {
	return p.branches
}

// checkStateFlow verifies, where statically decidable, that the state
// type can flow through a seed: into parameter slot 0 and out of the
// single result.
func checkStateFlow(seed, state reflect.Type) error {
	if in := seed.In(0); state.Kind() != reflect.Interface && !state.AssignableTo(in) && !state.ConvertibleTo(in) {
		return &ArgumentTypeError{Type: seed, Position: 0, Expected: in, Actual: state}
	}

	out := seed.Out(0)
	switch {
	case state.Kind() == reflect.Interface:
		if out.Kind() != reflect.Interface && !out.Implements(state) {
			return &SeedError{
				Type:    seed,
				Message: fmt.Sprintf("result %s does not implement the state type %s", out, state),
			}
		}

	case out.Kind() != reflect.Interface && !out.AssignableTo(state) && !out.ConvertibleTo(state):
		return &SeedError{
			Type:    seed,
			Message: fmt.Sprintf("result %s cannot become the state type %s", out, state),
		}
	}

	return nil
}

// bloomTransform adapts a one-remaining chain to a state transform.
// Composition already verified the chain's arity, so the only failure
// left is a dynamic type mismatch under an interface-valued state,
// which panics the way a failed type assertion would.
func bloomTransform[S any](c *Chain) Transform[S] {
	state := Type[S]()
	return func(s S) S {
		result, err := Bloom(s, c)
		if err != nil {
			panic(err)
		}

		if result == nil {
			switch state.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
				var zero S
				return zero
			}

			panic(&SeedError{
				Type:    c.Seed(),
				Message: fmt.Sprintf("nil result cannot become the state type %s", state),
			})
		}

		if typed, ok := result.(S); ok {
			return typed
		}

		rv := ValueOf(result)
		if rv.IsValid() && rv.Type().ConvertibleTo(state) {
			return rv.Convert(state).Interface().(S)
		}

		panic(&SeedError{
			Type:    c.Seed(),
			Message: fmt.Sprintf("result %T cannot become the state type %s", result, state),
		})
	}
}

// reduceTransform folds branch transforms left to right.  With no
// branches the reducer is the identity transform.
func reduceTransform[S any](branches []Transform[S]) Transform[S] {
	return func(s S) S {
		for _, b := range branches {
			s = b(s)
		}

		return s
	}
}

// wrapTransform applies a declaration list of interceptors to t.  The
// loop iterates in reverse so that the first declared interceptor is
// outermost at run time.  A Wrap that returns nil fails the pipeline's
// definition.
func wrapTransform[S any, I interface {
	Wrap(Transform[S]) Transform[S]
}](name, kind string, t Transform[S], interceptors []I) (Transform[S], error) {
	for j := len(interceptors) - 1; j >= 0; j-- {
		if t = interceptors[j].Wrap(t); t == nil {
			return nil, fmt.Errorf("pipeline %s: %s interceptor %d returned a nil transform", name, kind, j)
		}
	}

	return t, nil
}
