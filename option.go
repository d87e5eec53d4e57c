package graft

import (
	"fmt"

	"go.uber.org/multierr"
)

// UnitOption configures a Unit under construction.  The recognized
// options are WithStepInterceptors and WithPipelineInterceptors.
type UnitOption[S any] interface {
	applyTo(u *Unit[S]) error
}

// unitOptionFunc adapts a closure to UnitOption.
type unitOptionFunc[S any] func(*Unit[S]) error

func (f unitOptionFunc[S]) applyTo(u *Unit[S]) error {
	return f(u)
}

// WithStepInterceptors appends step interceptors to the unit's shared
// declaration list.  Declaration order is preserved within and across
// uses of this option.  A nil interceptor is a definition error.
func WithStepInterceptors[S any](interceptors ...StepInterceptor[S]) UnitOption[S] {
	return unitOptionFunc[S](func(u *Unit[S]) error {
		for i, si := range interceptors {
			if si == nil {
				return fmt.Errorf("step interceptor %d is nil", len(u.steps)+i)
			}
		}

		u.steps = append(u.steps, interceptors...)
		return nil
	})
}

// WithPipelineInterceptors appends pipeline interceptors to the unit's
// shared declaration list.  Declaration order is preserved within and
// across uses of this option.  A nil interceptor is a definition
// error.
func WithPipelineInterceptors[S any](interceptors ...PipelineInterceptor[S]) UnitOption[S] {
	return unitOptionFunc[S](func(u *Unit[S]) error {
		for i, pi := range interceptors {
			if pi == nil {
				return fmt.Errorf("pipeline interceptor %d is nil", len(u.pipes)+i)
			}
		}

		u.pipes = append(u.pipes, interceptors...)
		return nil
	})
}

// applyOptions runs each option against u, collecting every failure.
func applyOptions[S any](u *Unit[S], opts []UnitOption[S]) (err error) {
	for _, o := range opts {
		if o != nil {
			err = multierr.Append(err, o.applyTo(u))
		}
	}

	return
}
