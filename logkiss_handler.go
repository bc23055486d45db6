package logkiss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Handler is a slog.Handler that renders records through the logkiss
// engine and writes whole lines to its stream. Rendering is stateless;
// the only persisted state is the immutable resolved Config, and the
// single write per record relies on one mutex so concurrent loggers
// interleave whole lines, never bytes.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	mode  ColorMode
	cfg   *Config // nil means use the process-wide CurrentConfig

	attrs  []slog.Attr
	groups []string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLevel sets the minimum level the handler emits.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(h *Handler) { h.level = level }
}

// WithColorMode overrides the colorful-by-default behavior.
func WithColorMode(mode ColorMode) HandlerOption {
	return func(h *Handler) { h.mode = mode }
}

// WithConfig pins the handler to an explicit resolved Config instead of
// the process-wide one.
func WithConfig(cfg Config) HandlerOption {
	return func(h *Handler) { h.cfg = &cfg }
}

// NewHandler creates a Handler writing to w. With no options it emits
// every level the program level allows, colorful by default.
func NewHandler(w io.Writer, opts ...HandlerOption) *Handler {
	h := &Handler{
		w:     w,
		mu:    &sync.Mutex{},
		level: LevelDebug,
		mode:  ColorAlways,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func consoleStream() io.Writer { return os.Stderr }

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	h2.groups = append([]string(nil), h.groups...)
	return &h2
}

// qualify prefixes an attr key with the open group names.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

// colorEnabled makes the per-record color decision. The environment is
// re-snapshotted on every call so changes take effect without
// re-initialization.
func (h *Handler) colorEnabled() bool {
	switch h.mode {
	case ColorNever:
		return false
	case ColorAuto:
		f, ok := h.w.(*os.File)
		if !ok || !isTerminal(f.Fd()) {
			return false
		}
	}
	return ShouldColor(CaptureEnvironment())
}

// Handle implements slog.Handler. It renders the fixed logkiss layout
// and appends record attributes as key=value pairs to the message body,
// so they share the message's per-level style.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	file, line := h.source(r)

	msg := r.Message
	var parts []string
	for _, a := range h.attrs {
		parts = appendAttr(parts, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = appendAttr(parts, h.qualify(a))
		return true
	})
	if len(parts) > 0 {
		msg = msg + " " + strings.Join(parts, " ")
	}

	cfg := h.config()
	rec := Record{
		Time:    r.Time,
		Level:   LevelName(r.Level),
		File:    file,
		Line:    line,
		Message: msg,
	}
	line2 := RenderLine(rec, cfg, h.colorEnabled(), levelWidthFromEnv(), pathShortenFromEnv())

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line2+"\n")
	return err
}

func (h *Handler) config() Config {
	if h.cfg != nil {
		return *h.cfg
	}
	return CurrentConfig()
}

// source resolves the record's pc to a file and line.
func (h *Handler) source(r slog.Record) (string, int) {
	if r.PC == 0 {
		return "unknown", 0
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "unknown", 0
	}
	return frame.File, frame.Line
}

// appendAttr formats one attr as key=value, flattening group values
// into dotted keys.
func appendAttr(parts []string, a slog.Attr) []string {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		for _, member := range v.Group() {
			member.Key = a.Key + "." + member.Key
			parts = appendAttr(parts, member)
		}
		return parts
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"") {
			return append(parts, fmt.Sprintf("%s=%q", a.Key, s))
		}
		return append(parts, a.Key+"="+s)
	default:
		return append(parts, fmt.Sprintf("%s=%v", a.Key, v.Any()))
	}
}
