package logkiss

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorMode selects how a handler decides whether to emit escape
// sequences. The library is colorful by default: ColorAlways does not
// look at the output stream at all, only at the environment signals.
type ColorMode int

const (
	// ColorAlways emits colors unless an environment signal disables
	// them. This is the default.
	ColorAlways ColorMode = iota
	// ColorNever emits no escape sequences ever.
	ColorNever
	// ColorAuto emits colors only when the output stream is a terminal
	// (and no environment signal disables them).
	ColorAuto
)

// Environment is a snapshot of the recognized environment variables,
// captured at decision time.
type Environment struct {
	DisableColor string // LOGKISS_DISABLE_COLOR
	NoColorSet   bool   // NO_COLOR present, any value
	LevelFormat  string // LOGKISS_LEVEL_FORMAT
	ConfigPath   string // LOGKISS_CONFIG
	SkipConfig   string // LOGKISS_SKIP_CONFIG
	PathShorten  string // LOGKISS_PATH_SHORTEN
	Level        string // LOGKISS_LEVEL
	Debug        string // LOGKISS_DEBUG
}

// CaptureEnvironment snapshots the recognized variables. It is called on every
// render so environment changes take effect without re-initialization.
func CaptureEnvironment() Environment {
	_, noColor := os.LookupEnv("NO_COLOR")
	return Environment{
		DisableColor: os.Getenv("LOGKISS_DISABLE_COLOR"),
		NoColorSet:   noColor,
		LevelFormat:  os.Getenv("LOGKISS_LEVEL_FORMAT"),
		ConfigPath:   os.Getenv("LOGKISS_CONFIG"),
		SkipConfig:   os.Getenv("LOGKISS_SKIP_CONFIG"),
		PathShorten:  os.Getenv("LOGKISS_PATH_SHORTEN"),
		Level:        os.Getenv("LOGKISS_LEVEL"),
		Debug:        os.Getenv("LOGKISS_DEBUG"),
	}
}

// truthy implements the original "1", "true", "yes" convention,
// case-insensitively.
func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ShouldColor decides whether escape sequences may be emitted.
// Precedence, first match wins:
//
//  1. LOGKISS_DISABLE_COLOR truthy -> no color
//  2. NO_COLOR present (any value) -> no color
//  3. otherwise -> color
//
// Output-stream interactivity deliberately plays no role here; logkiss
// is colorful by default.
func ShouldColor(env Environment) bool {
	if truthy(env.DisableColor) {
		return false
	}
	if env.NoColorSet {
		return false
	}
	return true
}

// isTerminal reports whether fd is an interactive terminal. Only
// consulted by ColorAuto.
func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
