package graftconfig

import (
	"encoding"
	"reflect"

	"github.com/graftfn/graft"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrorUnused sets the DecoderConfig.ErrorUnused flag.  When set, any key
// in the configuration source that does not correspond to a struct field
// fails the unmarshal.  Unit configuration uses this to reject unrecognized
// options instead of silently dropping them.
func ErrorUnused(f bool) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = f
	}
}

// Exact is a synonym for ErrorUnused(true), which is the most common case.
// A subsequent ErrorUnused(false) option turns the flag back off.
func Exact(dc *mapstructure.DecoderConfig) {
	dc.ErrorUnused = true
}

// WeaklyTypedInput sets the DecoderConfig.WeaklyTypedInput flag, which
// permits the usual mapstructure scalar conversions.  Prebound values in
// branch configuration benefit from this, since configuration formats do
// not always preserve the exact scalar type a seed parameter expects.
func WeaklyTypedInput(f bool) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = f
	}
}

// TagName sets the DecoderConfig.TagName consulted when mapping struct
// fields to configuration keys.  The default is "mapstructure", and
// TagName("") restores that same default.
func TagName(v string) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = v
	}
}

// Merge takes any number of slices of decoder options and merges them
// into a single option.  It simply iterates over all the given options,
// applying them in order, without allocating a combined slice.
func Merge(opts ...[]viper.DecoderConfigOption) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		for _, group := range opts {
			for _, o := range group {
				o(dc)
			}
		}
	}
}

// DefaultDecodeHooks is a viper option that sets the decode hooks this
// package expects: the stock viper hooks plus TextUnmarshalerHookFunc.
//
// ComposeDecodeHooks may still be used with this option as long as it
// appears after this one.
func DefaultDecodeHooks(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		TextUnmarshalerHookFunc,
	)
}

// UnitDecodeOptions returns the decoder options applied to unit
// configuration before any caller-supplied options: exact decoding so
// unrecognized keys fail, weakly typed input so prebound scalars convert,
// and the default decode hooks.
func UnitDecodeOptions() []viper.DecoderConfigOption {
	return []viper.DecoderConfigOption{
		Exact,
		WeaklyTypedInput(true),
		DefaultDecodeHooks,
	}
}

// ComposeDecodeHooks appends decode hook functions to mapstructure's
// DecoderConfig.  Any decode hooks already present are preserved and run
// before the given hooks.
func ComposeDecodeHooks(fs ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		if dc.DecodeHook != nil {
			dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
				append([]mapstructure.DecodeHookFunc{dc.DecodeHook},
					fs...,
				)...,
			)
		} else {
			dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(fs...)
		}
	}
}

var textUnmarshalerType = graft.Type[encoding.TextUnmarshaler]()

// TextUnmarshalerHookFunc is a mapstructure.DecodeHookFunc that honors the
// destination type's encoding.TextUnmarshaler implementation, using it to
// convert the src.  The src parameter must be a string, or else this
// function does not attempt any conversion.
//
// Two destination kinds are supported: a non-pointer type whose pointer
// implements encoding.TextUnmarshaler, and a pointer type which itself
// implements encoding.TextUnmarshaler.  More than one level of indirection
// is not supported.
//
// In any case where this function does no conversion, it returns src and a
// nil error, which is the contract required by mapstructure.DecodeHookFunc.
func TextUnmarshalerHookFunc(_, to reflect.Type, src interface{}) (interface{}, error) {
	if text, ok := src.(string); ok {
		switch {
		case to.Kind() != reflect.Ptr && reflect.PtrTo(to).Implements(textUnmarshalerType):
			ptr := reflect.New(to)
			tu := ptr.Interface().(encoding.TextUnmarshaler)
			err := tu.UnmarshalText([]byte(text))
			return ptr.Elem().Interface(), err

		case to.Kind() == reflect.Ptr && to.Elem().Kind() != reflect.Ptr && to.Implements(textUnmarshalerType):
			ptr := reflect.New(to.Elem())
			tu := ptr.Interface().(encoding.TextUnmarshaler)
			err := tu.UnmarshalText([]byte(text))
			return tu, err
		}
	}

	return src, nil
}
