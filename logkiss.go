package logkiss

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// Log levels. DEBUG..ERROR map onto the standard slog levels; CRITICAL
// extends them the way the original five-level model does.
const (
	LevelDebug    slog.Level = slog.LevelDebug
	LevelInfo     slog.Level = slog.LevelInfo
	LevelWarning  slog.Level = slog.LevelWarn
	LevelError    slog.Level = slog.LevelError
	LevelCritical slog.Level = 12
)

// levelNames maps level strings to slog.Level values
var levelNames = map[string]slog.Level{
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warning":  LevelWarning,
	"warn":     LevelWarning, // alias for warning
	"error":    LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical, // alias for critical
}

// reverseLevelNames maps slog.Level values to canonical string names.
// WARNING is canonical here; it becomes "WARN" only at display time,
// through FormatLevelName.
var reverseLevelNames = map[slog.Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// LevelName returns the canonical name of a level. Unrecognized levels
// fall back to the slog spelling; the renderer treats those with a
// neutral style.
func LevelName(level slog.Level) string {
	if name, ok := reverseLevelNames[level]; ok {
		return name
	}
	return level.String()
}

// Logger wraps slog.Logger with the logkiss logging surface.
type Logger struct {
	*slog.Logger
}

var (
	programLevel  = new(slog.LevelVar) // WARNING by default
	mu            sync.RWMutex        // protects logger configuration changes
	defaultLogger *Logger
)

func init() {
	programLevel.Set(LevelWarning)
	initializeLogger()
}

// initializeLogger sets up the default logger: a console handler on
// stderr behind the formatter pipeline, at the current program level.
func initializeLogger() {
	handler := formatterPipeline(NewHandler(consoleStream(), WithLevel(programLevel)))
	defaultLogger = &Logger{Logger: slog.New(handler)}
	slog.SetDefault(defaultLogger.Logger)
}

// debugf reports internal diagnostics when LOGKISS_DEBUG is truthy.
// Recoverable failures (ignored config files, rejected handler entries)
// are only ever visible here.
func debugf(format string, args ...any) {
	if truthy(CaptureEnvironment().Debug) {
		log.Printf("logkiss: "+format, args...)
	}
}

// log is the low-level logging method. It must always be called
// directly by an exported logging method or function, because it uses a
// fixed call depth to obtain the pc.
func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}

// Debug logs a message at debug level
func Debug(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelDebug, msg, args...)
}

// DebugContext logs a message at debug level with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	defaultLogger.log(ctx, LevelDebug, msg, args...)
}

// Debugf logs a printf-formatted message at debug level
func Debugf(format string, args ...any) {
	defaultLogger.log(context.Background(), LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs a message at info level
func Info(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelInfo, msg, args...)
}

// InfoContext logs a message at info level with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	defaultLogger.log(ctx, LevelInfo, msg, args...)
}

// Infof logs a printf-formatted message at info level
func Infof(format string, args ...any) {
	defaultLogger.log(context.Background(), LevelInfo, fmt.Sprintf(format, args...))
}

// Warning logs a message at warning level
func Warning(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelWarning, msg, args...)
}

// Warn is an alias for Warning
func Warn(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelWarning, msg, args...)
}

// WarningContext logs a message at warning level with context
func WarningContext(ctx context.Context, msg string, args ...any) {
	defaultLogger.log(ctx, LevelWarning, msg, args...)
}

// Warningf logs a printf-formatted message at warning level
func Warningf(format string, args ...any) {
	defaultLogger.log(context.Background(), LevelWarning, fmt.Sprintf(format, args...))
}

// Error logs a message at error level
func Error(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelError, msg, args...)
}

// ErrorContext logs a message at error level with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	defaultLogger.log(ctx, LevelError, msg, args...)
}

// Errorf logs a printf-formatted message at error level
func Errorf(format string, args ...any) {
	defaultLogger.log(context.Background(), LevelError, fmt.Sprintf(format, args...))
}

// Critical logs a message at critical level
func Critical(msg string, args ...any) {
	defaultLogger.log(context.Background(), LevelCritical, msg, args...)
}

// CriticalContext logs a message at critical level with context
func CriticalContext(ctx context.Context, msg string, args ...any) {
	defaultLogger.log(ctx, LevelCritical, msg, args...)
}

// Criticalf logs a printf-formatted message at critical level
func Criticalf(format string, args ...any) {
	defaultLogger.log(context.Background(), LevelCritical, fmt.Sprintf(format, args...))
}

// SetLevel sets the minimum log level
func SetLevel(level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	programLevel.Set(level)
}

// GetLevel returns the current minimum log level
func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return programLevel.Level()
}

// SetLevelFromString sets the log level from a string representation.
// Supported levels: debug, info, warn/warning, error, critical/fatal.
// The comparison is case-insensitive.
func SetLevelFromString(levelStr string) error {
	if levelStr == "" {
		return fmt.Errorf("log level cannot be empty")
	}

	normalized := strings.ToLower(strings.TrimSpace(levelStr))
	level, exists := levelNames[normalized]
	if !exists {
		return fmt.Errorf("invalid log level '%s': supported levels are %s",
			levelStr, getSupportedLevelsString())
	}

	mu.Lock()
	defer mu.Unlock()
	programLevel.Set(level)
	return nil
}

// GetLevelString returns the current log level as a string
func GetLevelString() string {
	return LevelName(GetLevel())
}

// IsLevelEnabled checks if logging is enabled for the given level
func IsLevelEnabled(level slog.Level) bool {
	return GetLevel() <= level
}

// getSupportedLevelsString returns a comma-separated string of supported log levels
func getSupportedLevelsString() string {
	var names []string
	for name := range levelNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Default returns the package-level logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// NewLogger creates a Logger backed by the given handler, wrapped with
// the formatter pipeline.
func NewLogger(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(formatterPipeline(handler))}
}

// Logger methods mirroring the package-level surface.

// Warning logs a message at warning level
func (l *Logger) Warning(msg string, args ...any) {
	l.log(context.Background(), LevelWarning, msg, args...)
}

// WarningContext logs a message at warning level with context
func (l *Logger) WarningContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelWarning, msg, args...)
}

// Critical logs a message at critical level
func (l *Logger) Critical(msg string, args ...any) {
	l.log(context.Background(), LevelCritical, msg, args...)
}

// CriticalContext logs a message at critical level with context
func (l *Logger) CriticalContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelCritical, msg, args...)
}
