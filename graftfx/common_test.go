package graftfx

import (
	"errors"
	"strings"

	"github.com/graftfn/graft"
	"github.com/graftfn/graft/graftconfig"
	"github.com/spf13/viper"
)

// seeds for the unit fixtures
func add(x, y int) int { return x + y }

func double(x int) int { return x * 2 }

// badWriter fails every write
type badWriter struct{}

func (badWriter) Write([]byte) (int, error) {
	return 0, errors.New("this writer is broken")
}

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

// increment bumps the state ahead of each branch
func increment() graft.StepInterceptorFunc[int] {
	return func(next graft.Transform[int]) graft.Transform[int] {
		return func(s int) int {
			return next(s + 1)
		}
	}
}

// tenfold scales the state ahead of the whole pipeline
func tenfold() graft.PipelineInterceptorFunc[int] {
	return func(next graft.Transform[int]) graft.Transform[int] {
		return func(s int) int {
			return next(s * 10)
		}
	}
}

// workedRegistry returns a registry holding the names workedYAML refers to
func workedRegistry() *graftconfig.Registry[int] {
	r := graftconfig.NewRegistry[int]()
	_ = r.RegisterSeed("add", add)
	_ = r.RegisterSeed("double", double)
	_ = r.RegisterStepInterceptor("increment", increment())
	_ = r.RegisterPipelineInterceptor("tenfold", tenfold())

	return r
}

// workedYAML is the configuration counterpart of the worked composition
// example: initial state 3 computes 65.
const workedYAML = `
unit:
  name: math
  stepInterceptors: [increment]
  pipelineInterceptors: [tenfold]
  pipelines:
    - name: addAndDouble
      branches:
        - seed: double
        - seed: add
          prebound: [2]
`

// viperFor bootstraps a viper instance from YAML literal text
func viperFor(text string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	return v, v.ReadConfig(strings.NewReader(text))
}
