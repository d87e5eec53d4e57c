package graftconfig

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
)

type LoadTestSuite struct {
	suite.Suite
}

// viperFor bootstraps a viper instance from YAML literal text.
func (suite *LoadTestSuite) viperFor(text string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	suite.Require().NoError(
		v.ReadConfig(strings.NewReader(text)),
	)

	return v
}

const workedYAML = `
unit:
  name: math
  stepInterceptors: [increment]
  pipelineInterceptors: [tenfold]
  pipelines:
    - name: addAndDouble
      branches:
        - seed: double
        - seed: add
          prebound: [2]
`

func (suite *LoadTestSuite) TestLoad() {
	v := suite.viperFor(workedYAML)

	u, err := Load(v, "unit", workedRegistry())
	suite.Require().NoError(err)
	suite.Require().NotNil(u)

	actual, err := u.Invoke("addAndDouble", 3)
	suite.Require().NoError(err)
	suite.Equal(65, actual)
}

func (suite *LoadTestSuite) TestLoadAll() {
	v := suite.viperFor(`
units:
  - name: math
    stepInterceptors: [increment]
    pipelineInterceptors: [tenfold]
    pipelines:
      - name: addAndDouble
        branches:
          - seed: double
          - seed: add
            prebound: [2]
  - name: plain
    pipelines:
      - name: justDouble
        branches:
          - seed: double
`)

	units, err := LoadAll(v, "units", workedRegistry())
	suite.Require().NoError(err)
	suite.Require().Len(units, 2)

	suite.Equal("math", units[0].Name())
	suite.Equal("plain", units[1].Name())

	actual, err := units[0].Invoke("addAndDouble", 3)
	suite.Require().NoError(err)
	suite.Equal(65, actual)

	actual, err = units[1].Invoke("justDouble", 5)
	suite.Require().NoError(err)
	suite.Equal(10, actual)
}

func (suite *LoadTestSuite) TestUnrecognizedKey() {
	v := suite.viperFor(`
unit:
  name: math
  color: red
  pipelines:
    - name: addAndDouble
      branches:
        - seed: double
`)

	u, err := Load(v, "unit", workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)
	suite.Contains(err.Error(), "color")
}

func (suite *LoadTestSuite) TestUnregisteredName() {
	v := suite.viperFor(`
unit:
  name: math
  pipelines:
    - name: broken
      branches:
        - seed: missing
`)

	u, err := Load(v, "unit", workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)
	suite.Contains(err.Error(), "no seed named missing")
}

func (suite *LoadTestSuite) TestMissingKey() {
	v := suite.viperFor(`unrelated: true`)

	u, err := Load(v, "unit", workedRegistry())
	suite.Require().Error(err)
	suite.Nil(u)
	suite.Contains(err.Error(), "name")
}

func (suite *LoadTestSuite) TestNilViper() {
	u, err := Load(nil, "unit", workedRegistry())
	suite.Require().ErrorIs(err, ErrNilViper)
	suite.Nil(u)

	units, err := LoadAll(nil, "units", workedRegistry())
	suite.Require().ErrorIs(err, ErrNilViper)
	suite.Nil(units)
}

func (suite *LoadTestSuite) TestNilUnmarshaler() {
	u, err := Unmarshal(nil, "unit", workedRegistry())
	suite.Error(err)
	suite.Nil(u)
}

func (suite *LoadTestSuite) TestLoadAllAggregates() {
	v := suite.viperFor(`
units:
  - name: math
    pipelines:
      - name: broken
        branches:
          - seed: missing
  - name: alsobroken
    stepInterceptors: [nosuch]
`)

	units, err := LoadAll(v, "units", workedRegistry())
	suite.Require().Error(err)
	suite.Nil(units)

	suite.Contains(err.Error(), "units[0]")
	suite.Contains(err.Error(), "units[1]")
	suite.Contains(err.Error(), "no seed named missing")
	suite.Contains(err.Error(), "nosuch")
}

func TestLoad(t *testing.T) {
	suite.Run(t, new(LoadTestSuite))
}
