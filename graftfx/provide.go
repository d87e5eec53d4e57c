package graftfx

import (
	"github.com/graftfn/graft"
	"github.com/graftfn/graft/graftconfig"
	"go.uber.org/fx"
)

// UnitIn is the set of dependencies for constructors emitted by ProvideUnit.
type UnitIn struct {
	fx.In

	// Printer is an optional fx.Printer used to report unit load events
	Printer fx.Printer `optional:"true"`
}

// ProvideUnit emits a *graft.Unit[S] as a named component, using the given
// name both as the component name and as the unit name.  Interceptor
// initialization runs when the component is constructed, so a unit that
// fails to load surfaces as a constructor error and the enclosing app
// fails to start.
//
// The unit is emitted empty.  Use fx.Invoke, or a decorator, to define
// its pipelines:
//
//	fx.New(
//	  graftfx.ProvideUnit[int]("math",
//	    graft.WithStepInterceptors[int](trace),
//	  ),
//	  fx.Invoke(
//	    func(in struct {
//	      fx.In
//	      Unit *graft.Unit[int] `name:"math"`
//	    }) error {
//	      _, err := in.Unit.Define("double", graft.Branch(double))
//	      return err
//	    },
//	  ),
//	)
func ProvideUnit[S any](name string, opts ...graft.UnitOption[S]) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name: name,
			Target: func(in UnitIn) (*graft.Unit[S], error) {
				p := NewModulePrinter(Module, in.Printer)
				u, err := graft.NewUnit[S](name, opts...)
				if err != nil {
					p.Printf("UNIT\t[%s] failed to load: %s", name, err)
					return nil, err
				}

				p.Printf("UNIT\t[%s] loaded", name)
				return u, nil
			},
		},
	)
}

// LoadUnitIn is the set of dependencies for constructors emitted by LoadUnit.
type LoadUnitIn struct {
	fx.In

	// Unmarshaler is the required configuration strategy, normally
	// provided by Supply
	Unmarshaler graftconfig.Unmarshaler

	// Printer is an optional fx.Printer used to report unit load events
	Printer fx.Printer `optional:"true"`
}

// LoadUnit emits a *graft.Unit[S] as a named component built from the unit
// configuration at the given key.  The component name is the key, so the
// unit is addressable before any configuration has been read.  Unresolved
// names, malformed configuration, and interceptor initialization failures
// all surface as constructor errors that fail the enclosing app.
func LoadUnit[S any](key string, r *graftconfig.Registry[S]) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name: key,
			Target: func(in LoadUnitIn) (*graft.Unit[S], error) {
				p := NewModulePrinter(Module, in.Printer)
				u, err := graftconfig.Unmarshal(in.Unmarshaler, key, r)
				if err != nil {
					p.Printf("UNIT\t[%s] failed to load: %s", key, err)
					return nil, err
				}

				p.Printf("UNIT\t[%s] loaded as %s", key, u.Name())
				return u, nil
			},
		},
	)
}
