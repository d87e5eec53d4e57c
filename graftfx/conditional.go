package graftfx

import "go.uber.org/fx"

// Conditional is a simple strategy for emitting options into
// an fx.App container
type Conditional struct {
}

// Then returns all the given options if this Conditional is not nil.
// If this Conditional is nil, it returns an empty fx.Options.
func (c *Conditional) Then(o ...fx.Option) fx.Option {
	if c != nil {
		return fx.Options(o...)
	}

	return fx.Options()
}

// If returns a non-nil Conditional if its sole argument is true.
// This allows units to be gated on configuration:
//
//	v := viper.New() // initialize
//	fx.New(
//	  graftfx.Supply(v),
//
//	  graftfx.If(v.IsSet("units.math")).Then(
//	    graftfx.LoadUnit[int]("units.math", registry),
//	  ),
//
//	  graftfx.IfNot(v.IsSet("units.math")).Then(
//	    graftfx.ProvideUnit[int]("math"),
//	  ),
//	)
//
// Conditional components do not have to use viper.  Any boolean
// expression may be used as the argument.
func If(f bool) *Conditional {
	if f {
		return new(Conditional)
	}

	return nil
}

// IfNot is the boolean inverse of If
func IfNot(f bool) *Conditional {
	if !f {
		return new(Conditional)
	}

	return nil
}
