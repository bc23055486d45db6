package logkiss

import (
	"os"
	"strconv"
	"strings"
)

// DefaultLevelWidth is the display width of level labels when
// LOGKISS_LEVEL_FORMAT is unset or invalid.
const DefaultLevelWidth = 5

// FormatLevelName normalizes a level name to a fixed display width.
// "WARNING" is rewritten to "WARN" before the width adjustment, so it is
// not a plain truncation. Longer names are truncated, shorter ones are
// right-padded with spaces.
func FormatLevelName(name string, width int) string {
	if width <= 0 {
		return name
	}
	if name == "WARNING" {
		name = "WARN"
	}
	if len(name) > width {
		return name[:width]
	}
	return name + strings.Repeat(" ", width-len(name))
}

// levelWidthFromEnv reads LOGKISS_LEVEL_FORMAT. A non-numeric or
// non-positive value silently falls back to DefaultLevelWidth.
func levelWidthFromEnv() int {
	return positiveIntEnv("LOGKISS_LEVEL_FORMAT", DefaultLevelWidth)
}

// pathShortenFromEnv reads LOGKISS_PATH_SHORTEN. 0 disables shortening;
// invalid values disable it too.
func pathShortenFromEnv() int {
	v := os.Getenv("LOGKISS_PATH_SHORTEN")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func positiveIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
