package logkiss

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Record is the structural input of one rendered line.
type Record struct {
	Time    time.Time
	Level   string // canonical level name, e.g. "WARNING"
	File    string // source file path
	Line    int
	Message string
}

// timestampLayout matches the original "%Y-%m-%d %H:%M:%S" date format;
// milliseconds are appended separately so they stay outside the styled
// timestamp segment.
const timestampLayout = "2006-01-02 15:04:05"

// shortenPath keeps only the last depth path segments, prefixed with
// "...". depth 0 disables shortening and keeps the bare filename.
func shortenPath(path string, depth int) string {
	if depth <= 0 {
		return filepath.Base(path)
	}
	parts := strings.Split(path, "/")
	if len(parts) <= depth {
		return path
	}
	return ".../" + strings.Join(parts[len(parts)-depth:], "/")
}

// RenderLine produces the final text line for one record:
//
//	YYYY-MM-DD HH:MM:SS,mmm LEVEL | file:line | message
//
// Element styles come from cfg; the level label is styled by the
// original level name but displayed through FormatLevelName. When
// colorEnabled is false the identical layout is emitted with zero
// escape bytes. Multi-line messages are wrapped exactly once around the
// whole message field. Stateless: identical inputs yield identical
// output.
func RenderLine(rec Record, cfg Config, colorEnabled bool, levelWidth, pathShortenDepth int) string {
	ts := cfg.TimestampStyle().Wrap(rec.Time.Format(timestampLayout), colorEnabled)
	ms := fmt.Sprintf("%03d", rec.Time.Nanosecond()/int(time.Millisecond))

	label := FormatLevelName(rec.Level, levelWidth)
	label = cfg.LevelStyle(rec.Level).Wrap(label, colorEnabled)

	file := cfg.FilenameStyle().Wrap(shortenPath(rec.File, pathShortenDepth), colorEnabled)

	msg := cfg.MessageStyle(rec.Level).Wrap(rec.Message, colorEnabled)

	return fmt.Sprintf("%s,%s %s | %s:%3d | %s", ts, ms, label, file, rec.Line, msg)
}
