package graftconfig

import (
	"errors"
	"testing"

	"github.com/graftfn/graft"
	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"
)

type BuildTestSuite struct {
	suite.Suite
}

func (suite *BuildTestSuite) TestWorkedExample() {
	u, err := Build(workedUnitConfig(), workedRegistry())
	suite.Require().NoError(err)
	suite.Require().NotNil(u)

	suite.Equal("math", u.Name())
	suite.Equal([]string{"addAndDouble"}, u.Names())

	actual, err := u.Invoke("addAndDouble", 3)
	suite.Require().NoError(err)
	suite.Equal(65, actual)
}

func (suite *BuildTestSuite) TestValidate() {
	testData := []struct {
		cfg      UnitConfig
		expected string
	}{
		{
			cfg:      UnitConfig{},
			expected: "name",
		},
		{
			cfg: UnitConfig{
				Name:             "unit",
				StepInterceptors: []string{""},
			},
			expected: "stepInterceptors",
		},
		{
			cfg: UnitConfig{
				Name:                 "unit",
				PipelineInterceptors: []string{""},
			},
			expected: "pipelineInterceptors",
		},
		{
			cfg: UnitConfig{
				Name:      "unit",
				Pipelines: []PipelineConfig{{}},
			},
			expected: "pipelines",
		},
		{
			cfg: UnitConfig{
				Name: "unit",
				Pipelines: []PipelineConfig{
					{
						Name:     "member",
						Branches: []BranchConfig{{}},
					},
				},
			},
			expected: "seed",
		},
	}

	for _, record := range testData {
		suite.Run(record.expected, func() {
			err := record.cfg.Validate()
			suite.Require().Error(err)
			suite.Contains(err.Error(), record.expected)
		})
	}
}

func (suite *BuildTestSuite) TestValidateAggregates() {
	err := UnitConfig{
		StepInterceptors: []string{""},
	}.Validate()

	suite.Require().Error(err)
	suite.Len(multierr.Errors(err), 2)
}

func (suite *BuildTestSuite) TestValidationAbortsBuild() {
	u, err := Build[int](UnitConfig{}, NewRegistry[int]())
	suite.Error(err)
	suite.Nil(u)
}

func (suite *BuildTestSuite) TestUnknownInterceptors() {
	cfg := workedUnitConfig()
	cfg.StepInterceptors = append(cfg.StepInterceptors, "nosuchstep")
	cfg.PipelineInterceptors = append(cfg.PipelineInterceptors, "nosuchpipe")

	u, err := Build(cfg, workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)

	suite.Len(multierr.Errors(err), 2)
	suite.Contains(err.Error(), "nosuchstep")
	suite.Contains(err.Error(), "nosuchpipe")
}

func (suite *BuildTestSuite) TestUnknownSeed() {
	cfg := workedUnitConfig()
	cfg.Pipelines[0].Branches = append(cfg.Pipelines[0].Branches, BranchConfig{Seed: "nosuch"})

	u, err := Build(cfg, workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)
	suite.Contains(err.Error(), "no seed named nosuch")
}

func (suite *BuildTestSuite) TestInitFailureAbortsBuild() {
	var (
		boom = errors.New("init exploded")
		j    = new(journal)
		r    = workedRegistry()
	)

	suite.Require().NoError(
		r.RegisterStepInterceptor("doomed", &markInterceptor[int]{label: "doomed", initErr: boom, j: j}),
	)

	cfg := workedUnitConfig()
	cfg.StepInterceptors = []string{"doomed"}

	u, err := Build(cfg, r)
	suite.Require().Error(err)
	suite.Nil(u)

	var initFailed *graft.InterceptorInitFailedError
	suite.Require().ErrorAs(err, &initFailed)
	suite.Equal("math", initFailed.Owner)
	suite.Require().ErrorIs(err, boom)

	suite.Equal([]string{"init:doomed:math"}, j.events)
}

func (suite *BuildTestSuite) TestInitOwner() {
	var (
		j = new(journal)
		r = workedRegistry()
	)

	suite.Require().NoError(
		r.RegisterStepInterceptor("trace", &markInterceptor[int]{label: "trace", j: j}),
	)

	cfg := workedUnitConfig()
	cfg.StepInterceptors = []string{"trace"}

	_, err := Build(cfg, r)
	suite.Require().NoError(err)
	suite.Equal("init:trace:math", j.events[0])
}

func (suite *BuildTestSuite) TestDuplicatePipeline() {
	cfg := workedUnitConfig()
	cfg.Pipelines = append(cfg.Pipelines, cfg.Pipelines[0])

	u, err := Build(cfg, workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)
	suite.Contains(err.Error(), "already defined")
}

func (suite *BuildTestSuite) TestArityMismatch() {
	cfg := workedUnitConfig()
	cfg.Pipelines[0].Branches[1].Prebound = []any{1, 2}

	u, err := Build(cfg, workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)

	var mismatch *graft.ArityMismatchError
	suite.Require().ErrorAs(err, &mismatch)
	suite.Equal("addAndDouble", mismatch.Pipeline)
	suite.Equal(1, mismatch.Branch)
	suite.Zero(mismatch.Remaining)
}

func (suite *BuildTestSuite) TestNilRegistry() {
	u, err := Build[int](workedUnitConfig(), nil)
	suite.Error(err)
	suite.Nil(u)
}

func TestBuild(t *testing.T) {
	suite.Run(t, new(BuildTestSuite))
}
