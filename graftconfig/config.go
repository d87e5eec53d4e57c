package graftconfig

// BranchConfig describes one branch of a pipeline: the name of a
// registered seed plus any values to prebind, in parameter order.
type BranchConfig struct {
	// Seed is the registered name of the branch's seed function
	Seed string `mapstructure:"seed" validate:"required"`

	// Prebound are the values bound before any state is supplied.
	// After prebinding, exactly one parameter must remain open.
	Prebound []any `mapstructure:"prebound"`
}

// PipelineConfig describes one pipeline within a unit.
type PipelineConfig struct {
	// Name is the pipeline's name within its unit
	Name string `mapstructure:"name" validate:"required"`

	// Branches are the pipeline's branches in execution order.
	// An empty list yields the identity pipeline.
	Branches []BranchConfig `mapstructure:"branches" validate:"dive"`
}

// UnitConfig describes a composition unit: its interceptors, referenced by
// registered name, and the pipelines defined under it.
//
//	units:
//	  - name: math
//	    stepInterceptors: [trace]
//	    pipelineInterceptors: [logging]
//	    pipelines:
//	      - name: addAndDouble
//	        branches:
//	          - seed: add3
//	            prebound: [3]
//	          - seed: double
type UnitConfig struct {
	// Name is the unit's name, used as the owner in interceptor initialization
	Name string `mapstructure:"name" validate:"required"`

	// StepInterceptors are registered step interceptor names, in
	// declaration order
	StepInterceptors []string `mapstructure:"stepInterceptors" validate:"dive,required"`

	// PipelineInterceptors are registered pipeline interceptor names, in
	// declaration order
	PipelineInterceptors []string `mapstructure:"pipelineInterceptors" validate:"dive,required"`

	// Pipelines are the unit's pipeline definitions
	Pipelines []PipelineConfig `mapstructure:"pipelines" validate:"dive"`
}
