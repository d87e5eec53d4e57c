package graftfx

import (
	"github.com/graftfn/graft/graftconfig"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// UnmarshalerIn is the set of dependencies used to build the
// graftconfig.Unmarshaler component.  Supply satisfies this set.
type UnmarshalerIn struct {
	fx.In

	// Viper is the required Viper component in the enclosing fx.App
	Viper *viper.Viper

	// DecoderOptions are an optional set of options from the enclosing fx.App
	DecoderOptions []viper.DecoderConfigOption `optional:"true"`

	// Printer is an optional fx.Printer used for informational messages
	Printer fx.Printer `optional:"true"`
}

// Supply makes an externally created viper instance available to the
// enclosing fx.App, together with a graftconfig.Unmarshaler backed by it.
// If the viper instance is nil, an fx.Error option is used to
// short-circuit the app startup with graftconfig.ErrNilViper.
//
// The decoder options applied to every unmarshal operation are, in order:
// graftconfig.UnitDecodeOptions, the options supplied to this function,
// and an optional []viper.DecoderConfigOption component.  Later options
// may override earlier ones, so an app that wants lax decoding can pass
// graftconfig.ErrorUnused(false) here.
func Supply(v *viper.Viper, opts ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(graftconfig.ErrNilViper)
	}

	return fx.Options(
		fx.Supply(v),
		fx.Provide(
			func(in UnmarshalerIn) graftconfig.Unmarshaler {
				return graftconfig.ViperUnmarshaler{
					Viper: in.Viper,
					Options: []viper.DecoderConfigOption{
						graftconfig.Merge(
							graftconfig.UnitDecodeOptions(),
							opts,
							in.DecoderOptions,
						),
					},
					Printer: NewModulePrinter(Module, in.Printer),
				}
			},
		),
	)
}
