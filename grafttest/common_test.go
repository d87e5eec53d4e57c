package grafttest

import (
	"github.com/graftfn/graft"
	"github.com/graftfn/graft/graftconfig"
)

// seeds for the unit fixtures
func add(x, y int) int { return x + y }

func double(x int) int { return x * 2 }

// workedRegistry returns a registry holding the names workedYAML refers to
func workedRegistry() *graftconfig.Registry[int] {
	r := graftconfig.NewRegistry[int]()
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
