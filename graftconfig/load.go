package graftconfig

import (
	"errors"
	"fmt"

	"github.com/graftfn/graft"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Unmarshal reads a single UnitConfig at the given key and builds it
// against the registry.  An empty key reads the entire configuration as
// one UnitConfig.
func Unmarshal[S any](u Unmarshaler, key string, r *Registry[S]) (*graft.Unit[S], error) {
	var cfg UnitConfig
	if err := unmarshalKey(u, key, &cfg); err != nil {
		return nil, err
	}

	return Build(cfg, r)
}

// UnmarshalAll reads a list of UnitConfigs at the given key and builds
// each one.  A failed build does not stop the walk: failures aggregate,
// and any failure means no units are returned.
func UnmarshalAll[S any](u Unmarshaler, key string, r *Registry[S]) ([]*graft.Unit[S], error) {
	var cfgs []UnitConfig
	if err := unmarshalKey(u, key, &cfgs); err != nil {
		return nil, err
	}

	var (
		err   error
		units = make([]*graft.Unit[S], 0, len(cfgs))
	)

	for i, cfg := range cfgs {
		unit, berr := Build(cfg, r)
		if berr != nil {
			err = multierr.Append(err, fmt.Errorf("%s[%d]: %w", key, i, berr))
			continue
		}

		units = append(units, unit)
	}

	if err != nil {
		return nil, err
	}

	return units, nil
}

func unmarshalKey(u Unmarshaler, key string, value any) error {
	if u == nil {
		return errors.New("an unmarshaler is required")
	}

	if len(key) == 0 {
		return u.Unmarshal(value)
	}

	return u.UnmarshalKey(key, value)
}

// Load builds the unit described at the given key of the viper instance.
// UnitDecodeOptions apply first, so unrecognized configuration keys fail
// the load; opts may extend or override them.
func Load[S any](v *viper.Viper, key string, r *Registry[S], opts ...viper.DecoderConfigOption) (*graft.Unit[S], error) {
	vu, err := forViper(v, opts)
	if err != nil {
		return nil, err
	}

	return Unmarshal(vu, key, r)
}

// LoadAll builds every unit in the list at the given key of the viper
// instance, in the manner of Load.
func LoadAll[S any](v *viper.Viper, key string, r *Registry[S], opts ...viper.DecoderConfigOption) ([]*graft.Unit[S], error) {
	vu, err := forViper(v, opts)
	if err != nil {
		return nil, err
	}

	return UnmarshalAll(vu, key, r)
}

func forViper(v *viper.Viper, opts []viper.DecoderConfigOption) (ViperUnmarshaler, error) {
	if v == nil {
		return ViperUnmarshaler{}, ErrNilViper
	}

	return ViperUnmarshaler{
		Viper:   v,
		Options: []viper.DecoderConfigOption{Merge(UnitDecodeOptions(), opts)},
	}, nil
}
