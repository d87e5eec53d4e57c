package graft

import (
	"fmt"
	"sort"
)

// Unit is a composition unit: a named owner of shared interceptor
// declarations and of the pipelines defined under them.  Every
// pipeline the unit defines is wrapped with the unit's interceptors.
//
// Units are built by NewUnit and are not safe for concurrent
// definition; define the members up front, then invoke freely.
type Unit[S any] struct {
	name  string
	steps []StepInterceptor[S]
	pipes []PipelineInterceptor[S]

	pipelines map[string]*Pipeline[S]
}

// NewUnit builds a unit from the recognized options, then runs the
// one-time interceptor initialization protocol with the unit's name as
// owner.  Interceptor Init failures mean the unit does not load: the
// returned error aggregates every failure, each wrapped in
// InterceptorInitFailedError, and the unit is nil.
func NewUnit[S any](name string, opts ...UnitOption[S]) (*Unit[S], error) {
	u := &Unit[S]{
		name:      name,
		pipelines: make(map[string]*Pipeline[S]),
	}

	if err := applyOptions(u, opts); err != nil {
		return nil, fmt.Errorf("unit %s: %w", name, err)
	}

	if err := InitInterceptors(name, u.steps, u.pipes); err != nil {
		return nil, err
	}

	return u, nil
}

// Define composes a named pipeline from branches, wraps it with the
// unit's interceptor declarations, stores it as a member, and returns
// it.  Redefining a member name is a definition error.
func (u *Unit[S]) Define(name string, branches ...BranchSpec) (*Pipeline[S], error) {
	if _, exists := u.pipelines[name]; exists {
		return nil, fmt.Errorf("unit %s: pipeline %s is already defined", u.name, name)
	}

	p, err := Compose(name, branches, u.steps, u.pipes)
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", u.name, err)
	}

	u.pipelines[name] = p
	return p, nil
}

// Name returns the unit's name.
func (u *Unit[S]) Name() string {
	return u.name
}

// Pipeline returns the named member, if defined.
func (u *Unit[S]) Pipeline(name string) (*Pipeline[S], bool) {
	p, ok := u.pipelines[name]
	return p, ok
}

// Names returns the defined member names, sorted.
func (u *Unit[S]) Names() []string {
	names := make([]string, 0, len(u.pipelines))
	for name := range u.pipelines {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Invoke runs the named member on state.  The only possible error is
// an unknown member name; everything structural was settled when the
// member was defined.
func (u *Unit[S]) Invoke(pipeline string, state S) (S, error) {
	p, ok := u.pipelines[pipeline]
	if !ok {
		var zero S
		return zero, fmt.Errorf("unit %s: no pipeline named %s", u.name, pipeline)
	}

	return p.Invoke(state), nil
}
