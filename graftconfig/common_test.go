package graftconfig

import "github.com/graftfn/graft"

// seeds referenced by the configuration fixtures
func add(x, y int) int { return x + y }

func double(x int) int { return x * 2 }

// journal records interceptor activity in order of occurrence
type journal struct {
	events []string
}

func (j *journal) add(event string) {
	j.events = append(j.events, event)
}

// markInterceptor implements both interceptor kinds and records its
// lifecycle in a journal.  A non-nil initErr is returned from Init.
type markInterceptor[S any] struct {
	label   string
	initErr error
	j       *journal
}

func (m *markInterceptor[S]) Init(owner string) error {
	m.j.add("init:" + m.label + ":" + owner)
	return m.initErr
}

func (m *markInterceptor[S]) Wrap(next graft.Transform[S]) graft.Transform[S] {
	m.j.add("wrap:" + m.label)
	return func(s S) S {
		m.j.add("enter:" + m.label)
		out := next(s)
		m.j.add("exit:" + m.label)
		return out
	}
}

// workedRegistry returns a registry holding the names the worked-example
// configurations refer to.
func workedRegistry() *Registry[int] {
	r := NewRegistry[int]()
	_ = r.RegisterSeed("add", add)
	_ = r.RegisterSeed("double", double)
	_ = r.RegisterStepInterceptor("increment", graft.StepInterceptorFunc[int](
		func(next graft.Transform[int]) graft.Transform[int] {
			return func(s int) int {
				return next(s + 1)
			}
		},
	))
	_ = r.RegisterPipelineInterceptor("tenfold", graft.PipelineInterceptorFunc[int](
		func(next graft.Transform[int]) graft.Transform[int] {
			return func(s int) int {
				return next(s * 10)
			}
		},
	))

	return r
}

// workedUnitConfig is the configuration counterpart of the worked
// composition example: initial state 3 computes 65.
func workedUnitConfig() UnitConfig {
	return UnitConfig{
		Name:                 "math",
		StepInterceptors:     []string{"increment"},
		PipelineInterceptors: []string{"tenfold"},
		Pipelines: []PipelineConfig{
			{
				Name: "addAndDouble",
				Branches: []BranchConfig{
					{Seed: "double"},
					{Seed: "add", Prebound: []any{2}},
				},
			},
		},
	}
}
