package grafttest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/graftfn/graft/graftfx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// Suite is an embeddable type that makes unit configuration tests simpler.
// Embed this type in testify/suite-style test types.
type Suite struct {
	suite.Suite

	// viper is the viper instance for each test
	viper *viper.Viper
}

var _ suite.SetupTestSuite = (*Suite)(nil)

// SetupTest initializes a new viper instance for each test
func (suite *Suite) SetupTest() {
	suite.ResetViper()
}

// Viper returns the viper instance for the current test.
// Tests that need tighter control over the viper environment may use
// this to bootstrap additional features.
func (suite *Suite) Viper() *viper.Viper {
	return suite.viper
}

// ResetViper associates a fresh viper instance with the current test,
// returning that new instance
func (suite *Suite) ResetViper() *viper.Viper {
	suite.viper = viper.New()
	return suite.viper
}

// readConfig reads configuration of the given format into the current
// test's viper environment.  The source may be a string, a []byte, or
// an io.Reader.  Any other type panics.
func (suite *Suite) readConfig(configType string, source interface{}) {
	var r io.Reader
	switch s := source.(type) {
	case string:
		r = strings.NewReader(s)

	case []byte:
		r = bytes.NewReader(s)

	case io.Reader:
		r = s

	default:
		panic(fmt.Errorf("%T is not a supported configuration source", source))
	}

	suite.viper.SetConfigType(configType)
	suite.Require().NoError(
		suite.viper.ReadConfig(r),
	)
}

// YAML is a shorthand for bootstrapping the current test's viper environment
// with a given YAML configuration.  The value may be a string, a []byte,
// or an io.Reader.
func (suite *Suite) YAML(v interface{}) {
	suite.readConfig("yaml", v)
}

// JSON is a shorthand for bootstrapping the current test's viper environment
// with a given JSON configuration.  The value may be a string, a []byte,
// or an io.Reader.
func (suite *Suite) JSON(v interface{}) {
	suite.readConfig("json", v)
}

// Fxtest is a convenience for doing fxtest.New(...) with the current
// viper environment, test logging, and the additional fx.Options
func (suite *Suite) Fxtest(more ...fx.Option) *fxtest.App {
	return fxtest.New(
		suite.T(),
		append(
			[]fx.Option{
				graftfx.TestLogger(suite.T()),
				graftfx.Supply(suite.viper),
			},
			more...,
		)...,
	)
}

// Fx is a convenience for doing fx.New(...) with the current
// viper environment, test logging, and the additional fx.Options
func (suite *Suite) Fx(more ...fx.Option) *fx.App {
	return fx.New(
		append(
			[]fx.Option{
				graftfx.TestLogger(suite.T()),
				graftfx.Supply(suite.viper),
			},
			more...,
		)...,
	)
}

// RequireStart starts the given app, halting the current test if it fails
// to start.  The app may be a *fx.App or a *fxtest.App.  Any other type
// panics.
func (suite *Suite) RequireStart(app interface{}) {
	switch a := app.(type) {
	case *fxtest.App:
		a.RequireStart()

	case *fx.App:
		ctx, cancel := context.WithTimeout(context.Background(), a.StartTimeout())
		defer cancel()
		suite.Require().NoError(
			a.Start(ctx),
		)

	default:
		panic(fmt.Errorf("%T is not a startable app", app))
	}
}

// RequireStop stops the given app, failing the current test if it does not
// stop cleanly.  The app may be a *fx.App or a *fxtest.App.  Any other
// type panics.
func (suite *Suite) RequireStop(app interface{}) {
	switch a := app.(type) {
	case *fxtest.App:
		a.RequireStop()

	case *fx.App:
		ctx, cancel := context.WithTimeout(context.Background(), a.StopTimeout())
		defer cancel()
		suite.Require().NoError(
			a.Stop(ctx),
		)

	default:
		panic(fmt.Errorf("%T is not a stoppable app", app))
	}
}

// EnsureStop registers a cleanup that stops the given app when the current
// test finishes, regardless of outcome.  Stop errors are discarded, so an
// app already stopped by the test body is fine.  The app may be a *fx.App
// or a *fxtest.App.  Any other type panics.
func (suite *Suite) EnsureStop(app interface{}) {
	var (
		stop    func(context.Context) error
		timeout time.Duration
	)

	switch a := app.(type) {
	case *fxtest.App:
		stop, timeout = a.Stop, a.StopTimeout()

	case *fx.App:
		stop, timeout = a.Stop, a.StopTimeout()

	default:
		panic(fmt.Errorf("%T is not a stoppable app", app))
	}

	suite.T().Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = stop(ctx)
	})
}
