package logkiss

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// RawStyleEntry is one style entry as it appears in a YAML document.
// "fg"/"color" and "bg"/"background" are synonyms; when both spellings
// are present in the same entry the short form wins ("fg" over "color",
// "bg" over "background"), matching the primary keys of the built-in
// defaults. "style" accepts a single token or a list of tokens.
type RawStyleEntry struct {
	Fg         *string     `yaml:"fg"`
	Color      *string     `yaml:"color"`
	Bg         *string     `yaml:"bg"`
	Background *string     `yaml:"background"`
	Style      styleTokens `yaml:"style"`
}

// styleTokens decodes either a scalar or a sequence of style names.
// Shapes it cannot decode contribute nothing; a malformed style never
// fails the surrounding entry.
type styleTokens []string

func (t *styleTokens) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err == nil && s != "" {
			*t = styleTokens{s}
		}
	case yaml.SequenceNode:
		var ss []string
		if err := node.Decode(&ss); err == nil {
			*t = styleTokens(ss)
		}
	}
	return nil
}

// RawElements mirrors the "elements" section: per-element entries plus
// the nested per-level "message" mapping.
type RawElements struct {
	Timestamp *RawStyleEntry           `yaml:"timestamp"`
	Filename  *RawStyleEntry           `yaml:"filename"`
	Message   map[string]RawStyleEntry `yaml:"message"`
}

// RawHandler is one entry of the optional "handlers" section. Type names
// a constructor in the handler registry.
type RawHandler struct {
	Type  string `yaml:"type"`
	Class string `yaml:"class"` // accepted alias for type
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// RawRoot mirrors the optional "root" section.
type RawRoot struct {
	Level string `yaml:"level"`
}

// RawConfig is a parsed but unvalidated configuration document. Unknown
// top-level keys are ignored by the YAML decoder rather than reflected.
type RawConfig struct {
	Levels   map[string]RawStyleEntry `yaml:"levels"`
	Elements RawElements              `yaml:"elements"`
	Handlers map[string]RawHandler    `yaml:"handlers"`
	Root     RawRoot                  `yaml:"root"`
}

// Config is the fully resolved, immutable style configuration. Every
// known level and element has an entry; lookups for unrecognized names
// return a zero StyleSpec. Fields are unexported so a published Config
// cannot be mutated.
type Config struct {
	levels    map[string]StyleSpec
	timestamp StyleSpec
	filename  StyleSpec
	message   map[string]StyleSpec
}

// LevelStyle returns the style of the level label itself.
func (c Config) LevelStyle(level string) StyleSpec {
	return c.levels[level]
}

// TimestampStyle returns the style of the timestamp element.
func (c Config) TimestampStyle() StyleSpec { return c.timestamp }

// FilenameStyle returns the style of the file location element.
func (c Config) FilenameStyle() StyleSpec { return c.filename }

// MessageStyle returns the style of the message body for a level. An
// unrecognized level yields a neutral empty spec.
func (c Config) MessageStyle(level string) StyleSpec {
	return c.message[level]
}

// DefaultConfig returns the built-in defaults: blue DEBUG, white INFO,
// yellow WARNING, black-on-red ERROR, bold black-on-bright-red CRITICAL,
// white timestamps and cyan filenames, messages styled like their level.
func DefaultConfig() Config {
	levels := map[string]StyleSpec{
		"DEBUG":    {Foreground: Blue},
		"INFO":     {Foreground: White},
		"WARNING":  {Foreground: Yellow},
		"ERROR":    {Foreground: Black, Background: Red},
		"CRITICAL": {Foreground: Black, Background: BrightRed, Styles: []StyleName{StyleBold}},
	}
	message := make(map[string]StyleSpec, len(levels))
	for name, spec := range levels {
		message[name] = spec
	}
	return Config{
		levels:    levels,
		timestamp: StyleSpec{Foreground: White},
		filename:  StyleSpec{Foreground: Cyan},
		message:   message,
	}
}

// specFromEntry converts a raw entry to a StyleSpec. Unknown color and
// style tokens are dropped silently; the remaining valid fields are
// kept.
func specFromEntry(e RawStyleEntry) StyleSpec {
	var spec StyleSpec

	fg := e.Fg
	if fg == nil {
		fg = e.Color
	}
	if fg != nil {
		if name := ColorName(strings.ToLower(*fg)); knownColor(name) {
			spec.Foreground = name
		}
	}

	bg := e.Bg
	if bg == nil {
		bg = e.Background
	}
	if bg != nil {
		if name := ColorName(strings.ToLower(*bg)); knownColor(name) {
			spec.Background = name
		}
	}

	for _, tok := range e.Style {
		if name := StyleName(strings.ToLower(tok)); knownStyle(name) {
			spec.Styles = append(spec.Styles, name)
		}
	}
	return spec
}

// applyRaw merges one raw document into cfg. Granularity is per key: an
// entry present in raw replaces the whole entry for that key, it does
// not inherit the previous entry's other fields. Keys absent from raw
// are left untouched.
func applyRaw(cfg *Config, raw *RawConfig) {
	if raw == nil {
		return
	}
	for name, entry := range raw.Levels {
		cfg.levels[strings.ToUpper(name)] = specFromEntry(entry)
	}
	if raw.Elements.Timestamp != nil {
		cfg.timestamp = specFromEntry(*raw.Elements.Timestamp)
	}
	if raw.Elements.Filename != nil {
		cfg.filename = specFromEntry(*raw.Elements.Filename)
	}
	for name, entry := range raw.Elements.Message {
		cfg.message[strings.ToUpper(name)] = specFromEntry(entry)
	}
}

// ResolveConfig combines the built-in defaults with a loaded document
// and programmatic overrides, in that order of increasing precedence.
// Either document may be nil. The result always carries an entry for
// every known level and element, and resolving the same inputs twice
// yields identical values.
func ResolveConfig(loaded, overrides *RawConfig) Config {
	cfg := DefaultConfig()
	applyRaw(&cfg, loaded)
	applyRaw(&cfg, overrides)
	return cfg
}
