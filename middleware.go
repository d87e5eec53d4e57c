package graft

import (
	"fmt"

	"go.uber.org/multierr"
)

// Interceptor kinds as they appear in errors and in configuration.
const (
	StepKind     = "step"
	PipelineKind = "pipeline"
)

// Transform is the synchronous state transformation wrapped by
// interceptors and produced by composition.  It carries no error and
// no context: panics raised inside a seed propagate to the caller, and
// the engine introduces no failures of its own at run time.
type Transform[S any] func(S) S

// StepInterceptor decorates each branch of a pipeline individually.
//
// Init is invoked exactly once, as the composition unit declaring the
// interceptor loads.  A non-nil error prevents the unit from loading.
//
// Wrap receives the transform it decorates and returns the decorated
// transform.  It runs once per branch at composition time, never per
// invocation.
type StepInterceptor[S any] interface {
	Init(owner string) error
	Wrap(next Transform[S]) Transform[S]
}

// PipelineInterceptor decorates the composed whole: the reducer that
// threads state through every branch.  Its contract is identical to
// StepInterceptor's, so a single value may serve as both kinds.
type PipelineInterceptor[S any] interface {
	Init(owner string) error
	Wrap(next Transform[S]) Transform[S]
}

// BaseInterceptor is the no-op interceptor: Init always succeeds, and
// Wrap returns next untouched.  Embed it to implement only the methods
// you need.
type BaseInterceptor[S any] struct{}

// Init always succeeds
func (BaseInterceptor[S]) Init(string) error { return nil }

// Wrap returns next undecorated
func (BaseInterceptor[S]) Wrap(next Transform[S]) Transform[S] { return next }

// StepInterceptorFunc adapts a decorator closure to StepInterceptor
// with an always-successful Init.
type StepInterceptorFunc[S any] func(Transform[S]) Transform[S]

// Init always succeeds
func (f StepInterceptorFunc[S]) Init(string) error { return nil }

// Wrap applies the closure
func (f StepInterceptorFunc[S]) Wrap(next Transform[S]) Transform[S] { return f(next) }

// PipelineInterceptorFunc adapts a decorator closure to
// PipelineInterceptor with an always-successful Init.
type PipelineInterceptorFunc[S any] func(Transform[S]) Transform[S]

// Init always succeeds
func (f PipelineInterceptorFunc[S]) Init(string) error { return nil }

// Wrap applies the closure
func (f PipelineInterceptorFunc[S]) Wrap(next Transform[S]) Transform[S] { return f(next) }

// InterceptorInitFailedError wraps a failure reported by an
// interceptor's Init, identifying the interceptor by kind and position
// within its declaration list.
type InterceptorInitFailedError struct {
	Owner string
	Kind  string
	Index int
	Err   error
}

// Error satisfies the error interface
func (e *InterceptorInitFailedError) Error() string {
	return fmt.Sprintf("%s: %s interceptor %d failed to initialize: %s", e.Owner, e.Kind, e.Index, e.Err)
}

// Unwrap exposes the Init failure
func (e *InterceptorInitFailedError) Unwrap() error {
	return e.Err
}

// InitInterceptors runs the one-time initialization protocol for a set
// of interceptor declarations: every Init is called once with owner,
// step interceptors before pipeline interceptors, each kind in
// declaration order.  Every failure is collected, wrapped in
// InterceptorInitFailedError, and aggregated into the returned error.
// A non-nil result means the owner must not load.
//
// Units run this protocol themselves in NewUnit.  Callers composing
// pipelines directly with Compose own the protocol and should run it
// once per interceptor set.
func InitInterceptors[S any](owner string, steps []StepInterceptor[S], pipes []PipelineInterceptor[S]) (err error) {
	for i, s := range steps {
		if initErr := s.Init(owner); initErr != nil {
			err = multierr.Append(err, &InterceptorInitFailedError{
				Owner: owner,
				Kind:  StepKind,
				Index: i,
				Err:   initErr,
			})
		}
	}

	for i, p := range pipes {
		if initErr := p.Init(owner); initErr != nil {
			err = multierr.Append(err, &InterceptorInitFailedError{
				Owner: owner,
				Kind:  PipelineKind,
				Index: i,
				Err:   initErr,
			})
		}
	}

	return
}
