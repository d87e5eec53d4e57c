package graftconfig

import (
	"errors"

	"github.com/spf13/viper"
)

var (
	// ErrNilViper is returned when the externally supplied Viper
	// instance is nil
	ErrNilViper = errors.New("the viper instance cannot be nil")
)

// Printer receives informational output about unmarshal operations.
// go.uber.org/fx's Printer satisfies this interface, as does *log.Logger.
type Printer interface {
	Printf(template string, args ...interface{})
}

// Unmarshaler is the strategy used to read configuration into objects.
// Unit loading code in this package and in graftfx depends on this
// interface rather than on viper directly.
type Unmarshaler interface {
	// Unmarshal reads configuration data into the given struct
	Unmarshal(value interface{}) error

	// UnmarshalKey reads configuration data from a key into the given struct
	UnmarshalKey(key string, value interface{}) error
}

// ViperUnmarshaler is the standard Unmarshaler implementation.  It couples
// a Viper instance together with zero or more decoder options.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOptions passed to all
	// unmarshal calls
	Options []viper.DecoderConfigOption

	// Printer is an optional sink for informational messages.  When nil,
	// unmarshal operations are silent.
	Printer Printer
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value interface{}) error {
	if vu.Printer != nil {
		vu.Printer.Printf("UNMARSHAL => %T", value)
	}

	return vu.Viper.Unmarshal(value, vu.Options...)
}

// UnmarshalKey implements Unmarshaler
func (vu ViperUnmarshaler) UnmarshalKey(key string, value interface{}) error {
	if vu.Printer != nil {
		vu.Printer.Printf("UNMARSHAL KEY\t[%s] => %T", key, value)
	}

	return vu.Viper.UnmarshalKey(key, value, vu.Options...)
}
