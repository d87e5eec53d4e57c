package graftconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/graftfn/graft"
	"go.uber.org/multierr"
)

var (
	configValidate *validator.Validate
	validateOnce   sync.Once
)

// getValidator returns the package's singleton validator, configured to
// report fields by their mapstructure names so messages match the
// configuration keys the user actually wrote.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		configValidate = validator.New(validator.WithRequiredStructEnabled())
		configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return configValidate
}

// Validate checks this configuration's structural constraints: required
// names and non-empty interceptor references.  Violations aggregate so a
// single pass reports every problem.
func (uc UnitConfig) Validate() error {
	err := getValidator().Struct(uc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var out error
	for _, fe := range verrs {
		out = multierr.Append(out, fmt.Errorf("%s failed the %s constraint", fe.Namespace(), fe.Tag()))
	}

	return out
}

// Build validates cfg, resolves its seed and interceptor names against the
// registry, and builds the unit: NewUnit with the resolved interceptors,
// then one Define per configured pipeline.  Unresolved names and
// definition errors aggregate, and any failure means no unit is returned.
func Build[S any](cfg UnitConfig, r *Registry[S]) (*graft.Unit[S], error) {
	if r == nil {
		return nil, errors.New("a registry is required to build a unit")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		err   error
		steps = make([]graft.StepInterceptor[S], 0, len(cfg.StepInterceptors))
		pipes = make([]graft.PipelineInterceptor[S], 0, len(cfg.PipelineInterceptors))
	)

	for _, name := range cfg.StepInterceptors {
		if s, ok := r.StepInterceptor(name); ok {
			steps = append(steps, s)
		} else {
			err = multierr.Append(err, fmt.Errorf("unit %s: no step interceptor named %s is registered", cfg.Name, name))
		}
	}

	for _, name := range cfg.PipelineInterceptors {
		if p, ok := r.PipelineInterceptor(name); ok {
			pipes = append(pipes, p)
		} else {
			err = multierr.Append(err, fmt.Errorf("unit %s: no pipeline interceptor named %s is registered", cfg.Name, name))
		}
	}

	if err != nil {
		return nil, err
	}

	var opts []graft.UnitOption[S]
	if len(steps) > 0 {
		opts = append(opts, graft.WithStepInterceptors(steps...))
	}

	if len(pipes) > 0 {
		opts = append(opts, graft.WithPipelineInterceptors(pipes...))
	}

	u, err := graft.NewUnit[S](cfg.Name, opts...)
	if err != nil {
		return nil, err
	}

	for _, pc := range cfg.Pipelines {
		branches, berr := resolveBranches(pc, r)
		if berr != nil {
			err = multierr.Append(err, fmt.Errorf("unit %s: %w", cfg.Name, berr))
			continue
		}

		if _, derr := u.Define(pc.Name, branches...); derr != nil {
			err = multierr.Append(err, derr)
		}
	}

	if err != nil {
		return nil, err
	}

	return u, nil
}

// resolveBranches maps a pipeline's branch configuration onto branch
// specs, looking each seed up by name.
func resolveBranches[S any](pc PipelineConfig, r *Registry[S]) ([]graft.BranchSpec, error) {
	var (
		err      error
		branches = make([]graft.BranchSpec, 0, len(pc.Branches))
	)

	for i, bc := range pc.Branches {
		seed, ok := r.Seed(bc.Seed)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("pipeline %s: branch %d: no seed named %s is registered", pc.Name, i, bc.Seed))
			continue
		}

		branches = append(branches, graft.Branch(seed, bc.Prebound...))
	}

	return branches, err
}
