package logkiss_test

import (
	"testing"

	"github.com/logkiss/logkiss"
	"github.com/stretchr/testify/suite"
)

type ColorPolicySuite struct {
	suite.Suite
}

func (suite *ColorPolicySuite) TestColorfulByDefault() {
	suite.True(logkiss.ShouldColor(logkiss.Environment{}))
}

func (suite *ColorPolicySuite) TestDisableColorSignal() {
	testCases := []struct {
		value    string
		expected bool
	}{
		{"1", false},
		{"true", false},
		{"TRUE", false},
		{"yes", false},
		{"Yes", false},
		{"0", true},
		{"false", true},
		{"no", true},
		{"", true},
		{"anything", true},
	}

	for _, tc := range testCases {
		suite.Run(tc.value, func() {
			env := logkiss.Environment{DisableColor: tc.value}
			suite.Equal(tc.expected, logkiss.ShouldColor(env))
		})
	}
}

// NO_COLOR disables colors when present with any value, per
// no-color.org.
func (suite *ColorPolicySuite) TestNoColorSignal() {
	suite.False(logkiss.ShouldColor(logkiss.Environment{NoColorSet: true}))
}

func (suite *ColorPolicySuite) TestDisableColorWinsFirst() {
	env := logkiss.Environment{DisableColor: "1", NoColorSet: true}
	suite.False(logkiss.ShouldColor(env))
}

func (suite *ColorPolicySuite) TestCaptureEnvironment() {
	suite.T().Setenv("LOGKISS_DISABLE_COLOR", "yes")
	suite.T().Setenv("NO_COLOR", "")
	suite.T().Setenv("LOGKISS_LEVEL_FORMAT", "7")
	suite.T().Setenv("LOGKISS_PATH_SHORTEN", "2")

	env := logkiss.CaptureEnvironment()
	suite.Equal("yes", env.DisableColor)
	suite.True(env.NoColorSet) // present counts, even empty
	suite.Equal("7", env.LevelFormat)
	suite.Equal("2", env.PathShorten)
	suite.False(logkiss.ShouldColor(env))
}

func TestColorPolicySuite(t *testing.T) {
	suite.Run(t, new(ColorPolicySuite))
}
