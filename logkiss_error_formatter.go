package logkiss

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync"

	slogformatter "github.com/samber/slog-formatter"
	"gitlab.com/tozd/go/errors"
)

var (
	multilineMu         sync.RWMutex
	multilineStacktrace bool
)

// EnableMultilineStacktrace toggles multi-line stack trace formatting.
// Single-line (frames joined with " -> ") is the default; multi-line
// traces are wrapped once as a whole by the renderer, interior newlines
// are not re-styled.
func EnableMultilineStacktrace(enabled bool) {
	multilineMu.Lock()
	defer multilineMu.Unlock()
	multilineStacktrace = enabled
}

// IsMultilineStacktraceEnabled returns true if multi-line stack traces are enabled.
func IsMultilineStacktraceEnabled() bool {
	multilineMu.RLock()
	defer multilineMu.RUnlock()
	return multilineStacktrace
}

// frame styles reuse the style registry so the color decision stays in
// one place.
var (
	frameFileStyle = StyleSpec{Foreground: Green}
	frameLineStyle = StyleSpec{Foreground: Blue}
	frameFuncStyle = StyleSpec{Foreground: BrightWhite}
)

func stackTraceFormatter(frames *runtime.Frames) string {
	colored := ShouldColor(CaptureEnvironment())

	var stackLines []string
	for {
		frame, more := frames.Next()
		stackLines = append(stackLines, fmt.Sprintf("%s:%s: %s",
			frameFileStyle.Wrap(frame.File, colored),
			frameLineStyle.Wrap(strconv.Itoa(frame.Line), colored),
			frameFuncStyle.Wrap(frame.Function, colored)))
		if !more || len(stackLines) >= 20 {
			break
		}
	}

	if IsMultilineStacktraceEnabled() {
		return strings.Join(stackLines, "\n")
	}
	return strings.Join(stackLines, " -> ")
}

// ErrorFormatter transforms a plain go error attribute into a readable
// group with message, type and stacktrace.
func ErrorFormatter(fieldName string) slogformatter.Formatter {
	return slogformatter.FormatByFieldType(fieldName, func(err error) slog.Value {
		var pcs [50]uintptr
		runtime.Callers(9, pcs[:])
		stack := runtime.CallersFrames(pcs[:])
		values := []slog.Attr{
			slog.String("message", err.Error()),
			slog.String("type", reflect.TypeOf(err).String()),
			slog.String("stacktrace", stackTraceFormatter(stack)),
		}
		return slog.GroupValue(values...)
	})
}

// TozdErrorFormatter formats gitlab.com/tozd/go/errors values with their
// recorded stacktrace, details and cause chain.
func TozdErrorFormatter() slogformatter.Formatter {
	return slogformatter.FormatByType(func(v errors.E) slog.Value {
		var attrs []slog.Attr

		attrs = append(attrs, slog.String("message", v.Error()))

		if details := errors.Details(v); len(details) > 0 {
			var detailAttrs []any
			for k, val := range details {
				detailAttrs = append(detailAttrs, slog.Any(k, val))
			}
			attrs = append(attrs, slog.Group("details", detailAttrs...))
		}

		if stackTracer, ok := v.(interface{ StackTrace() []uintptr }); ok {
			if stackTrace := stackTracer.StackTrace(); len(stackTrace) > 0 {
				frames := runtime.CallersFrames(stackTrace)
				attrs = append(attrs, slog.String("stacktrace", stackTraceFormatter(frames)))
			}
		}

		if cause := errors.Cause(v); cause != nil && cause != v {
			attrs = append(attrs, slog.String("cause", cause.Error()))
		}

		return slog.GroupValue(attrs...)
	})
}
