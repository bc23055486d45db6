package logkiss

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	slogformatter "github.com/samber/slog-formatter"
	slogmulti "github.com/samber/slog-multi"
	"gitlab.com/tozd/go/errors"
)

// HandlerConstructor builds a handler from one raw "handlers:" entry.
type HandlerConstructor func(entry RawHandler, level slog.Leveler) (slog.Handler, errors.E)

var (
	handlerRegistryMu sync.RWMutex
	handlerRegistry   = map[string]HandlerConstructor{
		"console": newConsoleHandler,
		"file":    newFileHandler,
	}
)

// RegisterHandlerType adds a constructor to the handler registry.
// Configuration resolves handler entries by symbolic type name through
// this registry, never via reflection.
func RegisterHandlerType(name string, ctor HandlerConstructor) {
	handlerRegistryMu.Lock()
	defer handlerRegistryMu.Unlock()
	handlerRegistry[name] = ctor
}

func newConsoleHandler(_ RawHandler, level slog.Leveler) (slog.Handler, errors.E) {
	return NewHandler(consoleStream(), WithLevel(level)), nil
}

// newFileHandler appends rendered lines to a file, without escape
// sequences. Rotation is out of scope; pair with an external rotator.
func newFileHandler(entry RawHandler, level slog.Leveler) (slog.Handler, errors.E) {
	if entry.Path == "" {
		return nil, errors.New("file handler requires a path")
	}
	f, err := os.OpenFile(entry.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.WithMessage(err, "open log file")
	}
	return NewHandler(f, WithLevel(level), WithColorMode(ColorNever)), nil
}

// entryLevel resolves a handler entry's level, falling back to the
// shared program level when absent or unrecognized.
func entryLevel(entry RawHandler) slog.Leveler {
	if entry.Level == "" {
		return programLevel
	}
	if level, ok := levelNames[strings.ToLower(entry.Level)]; ok {
		return level
	}
	debugf("handler level %q unknown, using program level", entry.Level)
	return programLevel
}

// buildHandlers constructs the handlers named by the raw document and
// fans out across them. With no usable entries it falls back to a
// single console handler. Entries naming an unregistered type or
// failing to construct are skipped, never fatal.
func buildHandlers(raw *RawConfig) slog.Handler {
	var built []slog.Handler
	if raw != nil && len(raw.Handlers) > 0 {
		names := make([]string, 0, len(raw.Handlers))
		for name := range raw.Handlers {
			names = append(names, name)
		}
		sort.Strings(names)

		handlerRegistryMu.RLock()
		defer handlerRegistryMu.RUnlock()
		for _, name := range names {
			entry := raw.Handlers[name]
			typeName := entry.Type
			if typeName == "" {
				typeName = entry.Class
			}
			ctor, ok := handlerRegistry[typeName]
			if !ok {
				debugf("handler %q: unknown type %q, skipped", name, typeName)
				continue
			}
			h, err := ctor(entry, entryLevel(entry))
			if err != nil {
				debugf("handler %q: %v, skipped", name, err)
				continue
			}
			built = append(built, h)
		}
	}
	switch len(built) {
	case 0:
		return NewHandler(consoleStream(), WithLevel(programLevel))
	case 1:
		return built[0]
	default:
		return slogmulti.Fanout(built...)
	}
}

// formatterPipeline wraps a handler with the attribute formatters:
// rich tozd error rendering, generic error rendering, and readable Unix
// timestamps.
func formatterPipeline(handler slog.Handler) slog.Handler {
	return slogformatter.NewFormatterHandler(
		TozdErrorFormatter(),
		ErrorFormatter("error"),
		UnixTimestampFormatter("timestamp"),
	)(handler)
}

// applySetup publishes a new default logger built from handler.
func applySetup(handler slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &Logger{Logger: slog.New(formatterPipeline(handler))}
	slog.SetDefault(defaultLogger.Logger)
}

// applyLevel applies, in increasing precedence, the document's
// root.level and LOGKISS_LEVEL. Unrecognized values leave the program
// level unchanged.
func applyLevel(raw *RawConfig, env Environment) {
	levelStr := ""
	if raw != nil {
		levelStr = raw.Root.Level
	}
	if env.Level != "" {
		levelStr = env.Level
	}
	if levelStr == "" {
		return
	}
	if level, ok := levelNames[strings.ToLower(levelStr)]; ok {
		mu.Lock()
		programLevel.Set(level)
		mu.Unlock()
	} else {
		debugf("log level %q unknown, keeping %s", levelStr, GetLevelString())
	}
}

// Setup configures logkiss from the environment and the configuration
// file search: colors from the resolved Config, level from root.level
// and LOGKISS_LEVEL, handlers from the "handlers:" section. Missing or
// malformed configuration falls back to the built-in defaults; Setup
// never fails.
func Setup() {
	raw := LocateAndLoad("")
	SetConfig(ResolveConfig(raw, nil))
	applyLevel(raw, CaptureEnvironment())
	applySetup(buildHandlers(raw))
}

// SetupFromYAML configures logkiss from an explicit configuration file.
// Unlike Setup, a missing or unparseable file is reported to the
// caller; the current configuration is left untouched in that case.
func SetupFromYAML(path string) errors.E {
	if !fileExists(expandUser(path)) {
		return errors.Errorf("configuration file not found: %s", path)
	}
	raw, err := loadConfigFile(expandUser(path))
	if err != nil {
		return err
	}
	SetConfig(ResolveConfig(raw, nil))
	applyLevel(raw, CaptureEnvironment())
	applySetup(buildHandlers(raw))
	return nil
}

// SetupFromEnv configures logkiss from environment variables alone:
// built-in default colors, level from LOGKISS_LEVEL, a single console
// handler.
func SetupFromEnv() {
	SetConfig(ResolveConfig(nil, nil))
	applyLevel(nil, CaptureEnvironment())
	applySetup(NewHandler(consoleStream(), WithLevel(programLevel)))
}
