package logkiss_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/logkiss/logkiss"
	"github.com/stretchr/testify/suite"
)

type LogkissSuite struct {
	suite.Suite
	originalLevel slog.Level
}

func (suite *LogkissSuite) SetupTest() {
	suite.originalLevel = logkiss.GetLevel()
	logkiss.ResetConfigCache()
}

func (suite *LogkissSuite) TearDownTest() {
	logkiss.SetLevel(suite.originalLevel)
	logkiss.ResetConfigCache()
}

// newBufferLogger returns a logger writing plain lines into buf.
func newBufferLogger(buf *bytes.Buffer, opts ...logkiss.HandlerOption) *logkiss.Logger {
	opts = append([]logkiss.HandlerOption{logkiss.WithColorMode(logkiss.ColorNever)}, opts...)
	return logkiss.NewLogger(logkiss.NewHandler(buf, opts...))
}

var lineRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} [A-Z ]{5} \| \S+: *\d+ \| .*$`)

func (suite *LogkissSuite) TestSetAndGetLevel() {
	levels := []slog.Level{
		logkiss.LevelDebug,
		logkiss.LevelInfo,
		logkiss.LevelWarning,
		logkiss.LevelError,
		logkiss.LevelCritical,
	}

	for _, level := range levels {
		logkiss.SetLevel(level)
		suite.Equal(level, logkiss.GetLevel())
	}
}

func (suite *LogkissSuite) TestSetLevelFromString() {
	testCases := []struct {
		input         string
		expectedLevel slog.Level
		shouldError   bool
	}{
		{"debug", logkiss.LevelDebug, false},
		{"info", logkiss.LevelInfo, false},
		{"warning", logkiss.LevelWarning, false},
		{"warn", logkiss.LevelWarning, false}, // alias
		{"error", logkiss.LevelError, false},
		{"critical", logkiss.LevelCritical, false},
		{"fatal", logkiss.LevelCritical, false}, // alias

		// Case-insensitive tests
		{"DEBUG", logkiss.LevelDebug, false},
		{"Warning", logkiss.LevelWarning, false},
		{"CRITICAL", logkiss.LevelCritical, false},

		// With whitespace
		{"  error  ", logkiss.LevelError, false},

		// Invalid cases
		{"invalid", 0, true},
		{"", 0, true},
		{"warninggg", 0, true},
	}

	for _, tc := range testCases {
		suite.Run(tc.input, func() {
			err := logkiss.SetLevelFromString(tc.input)

			if tc.shouldError {
				suite.Error(err)
				if tc.input == "" {
					suite.Contains(err.Error(), "log level cannot be empty")
				} else {
					suite.Contains(err.Error(), "invalid log level")
				}
			} else {
				suite.NoError(err)
				suite.Equal(tc.expectedLevel, logkiss.GetLevel())
			}
		})
	}
}

func (suite *LogkissSuite) TestGetLevelString() {
	testCases := []struct {
		level          slog.Level
		expectedString string
	}{
		{logkiss.LevelDebug, "DEBUG"},
		{logkiss.LevelInfo, "INFO"},
		{logkiss.LevelWarning, "WARNING"},
		{logkiss.LevelError, "ERROR"},
		{logkiss.LevelCritical, "CRITICAL"},
	}

	for _, tc := range testCases {
		suite.Run(tc.expectedString, func() {
			logkiss.SetLevel(tc.level)
			suite.Equal(tc.expectedString, logkiss.GetLevelString())
		})
	}
}

func (suite *LogkissSuite) TestIsLevelEnabled() {
	logkiss.SetLevel(logkiss.LevelWarning)

	suite.False(logkiss.IsLevelEnabled(logkiss.LevelDebug))
	suite.False(logkiss.IsLevelEnabled(logkiss.LevelInfo))
	suite.True(logkiss.IsLevelEnabled(logkiss.LevelWarning))
	suite.True(logkiss.IsLevelEnabled(logkiss.LevelError))
	suite.True(logkiss.IsLevelEnabled(logkiss.LevelCritical))
}

func (suite *LogkissSuite) TestHandlerWritesFixedLayout() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Warning("something happened")

	line := strings.TrimSuffix(buf.String(), "\n")
	suite.Regexp(lineRe, line)
	suite.Contains(line, " WARN  | ")
	suite.Contains(line, "logkiss_test.go:")
	suite.True(strings.HasSuffix(line, "| something happened"))
	suite.NotContains(line, "\x1b")
}

func (suite *LogkissSuite) TestHandlerAppendsAttrs() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Error("request failed", "code", 502, "path", "/api/users")

	suite.Contains(buf.String(), "| request failed code=502 path=/api/users")
}

func (suite *LogkissSuite) TestHandlerQuotesSpacedAttrValues() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Error("boom", "reason", "too many open files")

	suite.Contains(buf.String(), `reason="too many open files"`)
}

func (suite *LogkissSuite) TestWithAttrsAndGroups() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.With("request_id", "req-1").WithGroup("db").Error("query failed", "table", "users")

	out := buf.String()
	suite.Contains(out, "request_id=req-1")
	suite.Contains(out, "db.table=users")
}

func (suite *LogkissSuite) TestHandlerLevelFiltering() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, logkiss.WithLevel(logkiss.LevelError))

	logger.Info("ignored")
	logger.Warning("ignored too")
	logger.Error("kept")

	out := buf.String()
	suite.NotContains(out, "ignored")
	suite.Equal(1, strings.Count(out, "\n"))
	suite.Contains(out, "kept")
}

func (suite *LogkissSuite) TestColorfulByDefaultOnBuffers() {
	// Colors are a product decision, not a terminal capability check:
	// a plain buffer still gets escape sequences.
	var buf bytes.Buffer
	logger := logkiss.NewLogger(logkiss.NewHandler(&buf, logkiss.WithConfig(logkiss.DefaultConfig())))

	logger.Error("boom")

	suite.Contains(buf.String(), "\x1b[30;41mERROR\x1b[0m")
}

func (suite *LogkissSuite) TestDisableColorSignalSuppressesEscapes() {
	suite.T().Setenv("LOGKISS_DISABLE_COLOR", "1")

	var buf bytes.Buffer
	logger := logkiss.NewLogger(logkiss.NewHandler(&buf, logkiss.WithConfig(logkiss.DefaultConfig())))

	logger.Error("boom")

	suite.NotContains(buf.String(), "\x1b")
}

func (suite *LogkissSuite) TestNoColorSignalSuppressesEscapes() {
	suite.T().Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	logger := logkiss.NewLogger(logkiss.NewHandler(&buf, logkiss.WithConfig(logkiss.DefaultConfig())))

	logger.Critical("down")

	suite.NotContains(buf.String(), "\x1b")
}

func (suite *LogkissSuite) TestLevelWidthFromEnvironment() {
	suite.T().Setenv("LOGKISS_LEVEL_FORMAT", "3")

	var buf bytes.Buffer
	logger := newBufferLogger(&buf)
	logger.Warning("w")
	logger.Error("e")

	out := buf.String()
	suite.Contains(out, " WAR | ")
	suite.Contains(out, " ERR | ")
}

func (suite *LogkissSuite) TestInvalidLevelWidthFallsBack() {
	suite.T().Setenv("LOGKISS_LEVEL_FORMAT", "banana")

	var buf bytes.Buffer
	newBufferLogger(&buf).Error("e")

	suite.Contains(buf.String(), " ERROR | ")
}

func (suite *LogkissSuite) TestPathShorteningFromEnvironment() {
	suite.T().Setenv("LOGKISS_PATH_SHORTEN", "2")

	var buf bytes.Buffer
	newBufferLogger(&buf).Error("e")

	suite.Contains(buf.String(), "| .../")
	suite.Contains(buf.String(), "/logkiss_test.go:")
}

func (suite *LogkissSuite) TestRenderNeverFailsWithoutConfig() {
	// No config file anywhere: built-in defaults carry the render.
	suite.T().Setenv("LOGKISS_SKIP_CONFIG", "1")

	var buf bytes.Buffer
	newBufferLogger(&buf).Error("still works")

	suite.Contains(buf.String(), "| still works")
}

func (suite *LogkissSuite) TestConcurrentLoggingKeepsLinesWhole() {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	const goroutines = 8
	const perGoroutine = 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Error(fmt.Sprintf("msg-%d-%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	suite.Len(lines, goroutines*perGoroutine)
	for _, line := range lines {
		suite.Regexp(lineRe, line)
	}
}

func (suite *LogkissSuite) TestConcurrentFirstConfigUse() {
	logkiss.ResetConfigCache()
	suite.T().Setenv("LOGKISS_SKIP_CONFIG", "1")

	results := make([]logkiss.Config, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = logkiss.CurrentConfig()
		}(i)
	}
	wg.Wait()

	for _, cfg := range results {
		suite.Equal(results[0].LevelStyle("ERROR"), cfg.LevelStyle("ERROR"))
	}
}

func TestLogkissSuite(t *testing.T) {
	suite.Run(t, new(LogkissSuite))
}
