package logkiss

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ColorName is one of the 16 canonical terminal colors, usable as a
// foreground or a background.
type ColorName string

const (
	Black   ColorName = "black"
	Red     ColorName = "red"
	Green   ColorName = "green"
	Yellow  ColorName = "yellow"
	Blue    ColorName = "blue"
	Magenta ColorName = "magenta"
	Cyan    ColorName = "cyan"
	White   ColorName = "white"

	BrightBlack   ColorName = "bright_black"
	BrightRed     ColorName = "bright_red"
	BrightGreen   ColorName = "bright_green"
	BrightYellow  ColorName = "bright_yellow"
	BrightBlue    ColorName = "bright_blue"
	BrightMagenta ColorName = "bright_magenta"
	BrightCyan    ColorName = "bright_cyan"
	BrightWhite   ColorName = "bright_white"
)

// StyleName is a terminal text attribute.
type StyleName string

const (
	StyleBold      StyleName = "bold"
	StyleDim       StyleName = "dim"
	StyleItalic    StyleName = "italic"
	StyleUnderline StyleName = "underline"
	StyleBlink     StyleName = "blink"
	StyleReverse   StyleName = "reverse"
	StyleHidden    StyleName = "hidden"
	StyleStrike    StyleName = "strike"
)

// fgColors maps color names to SGR foreground attributes.
var fgColors = map[ColorName]color.Attribute{
	Black:         color.FgBlack,
	Red:           color.FgRed,
	Green:         color.FgGreen,
	Yellow:        color.FgYellow,
	Blue:          color.FgBlue,
	Magenta:       color.FgMagenta,
	Cyan:          color.FgCyan,
	White:         color.FgWhite,
	BrightBlack:   color.FgHiBlack,
	BrightRed:     color.FgHiRed,
	BrightGreen:   color.FgHiGreen,
	BrightYellow:  color.FgHiYellow,
	BrightBlue:    color.FgHiBlue,
	BrightMagenta: color.FgHiMagenta,
	BrightCyan:    color.FgHiCyan,
	BrightWhite:   color.FgHiWhite,
}

// bgColors maps color names to SGR background attributes.
var bgColors = map[ColorName]color.Attribute{
	Black:         color.BgBlack,
	Red:           color.BgRed,
	Green:         color.BgGreen,
	Yellow:        color.BgYellow,
	Blue:          color.BgBlue,
	Magenta:       color.BgMagenta,
	Cyan:          color.BgCyan,
	White:         color.BgWhite,
	BrightBlack:   color.BgHiBlack,
	BrightRed:     color.BgHiRed,
	BrightGreen:   color.BgHiGreen,
	BrightYellow:  color.BgHiYellow,
	BrightBlue:    color.BgHiBlue,
	BrightMagenta: color.BgHiMagenta,
	BrightCyan:    color.BgHiCyan,
	BrightWhite:   color.BgHiWhite,
}

var styleAttrs = map[StyleName]color.Attribute{
	StyleBold:      color.Bold,
	StyleDim:       color.Faint,
	StyleItalic:    color.Italic,
	StyleUnderline: color.Underline,
	StyleBlink:     color.BlinkSlow,
	StyleReverse:   color.ReverseVideo,
	StyleHidden:    color.Concealed,
	StyleStrike:    color.CrossedOut,
}

const resetSequence = "\x1b[0m"

// StyleSpec describes how a single rendered segment is styled. A zero
// StyleSpec styles nothing.
type StyleSpec struct {
	Foreground ColorName
	Background ColorName
	Styles     []StyleName
}

// IsZero reports whether the spec carries no styling at all.
func (s StyleSpec) IsZero() bool {
	return s.Foreground == "" && s.Background == "" && len(s.Styles) == 0
}

// attributes collects the SGR attributes of the spec, in the order
// styles, foreground, background. Unknown names contribute nothing.
func (s StyleSpec) attributes() []color.Attribute {
	attrs := make([]color.Attribute, 0, len(s.Styles)+2)
	for _, st := range s.Styles {
		if a, ok := styleAttrs[st]; ok {
			attrs = append(attrs, a)
		}
	}
	if a, ok := fgColors[s.Foreground]; ok {
		attrs = append(attrs, a)
	}
	if a, ok := bgColors[s.Background]; ok {
		attrs = append(attrs, a)
	}
	return attrs
}

// Sequence returns the combined escape sequence for the spec, or "" for
// an empty spec. Pure: the same spec always yields the same sequence.
func (s StyleSpec) Sequence() string {
	attrs := s.attributes()
	if len(attrs) == 0 {
		return ""
	}
	codes := make([]string, len(attrs))
	for i, a := range attrs {
		codes[i] = strconv.Itoa(int(a))
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// Wrap surrounds text with the spec's escape sequence and a reset. When
// enabled is false, or the spec is empty, text is returned untouched so
// the output carries zero escape bytes.
func (s StyleSpec) Wrap(text string, enabled bool) string {
	if !enabled {
		return text
	}
	seq := s.Sequence()
	if seq == "" {
		return text
	}
	return seq + text + resetSequence
}

// knownColor reports whether name is one of the 16 canonical colors.
func knownColor(name ColorName) bool {
	_, ok := fgColors[name]
	return ok
}

// knownStyle reports whether name is a recognized text style.
func knownStyle(name StyleName) bool {
	_, ok := styleAttrs[name]
	return ok
}
