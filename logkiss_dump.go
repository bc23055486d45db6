package logkiss

import (
	"io"

	"github.com/k0kubun/pp/v3"
)

// DumpConfig pretty-prints the process-wide resolved Config to w.
// Coloring follows the same decision as log output, so piping the dump
// with NO_COLOR set yields plain text.
func DumpConfig(w io.Writer) {
	dumpValue(w, CurrentConfig())
}

// Dump pretty-prints an arbitrary value, useful together with
// LOGKISS_DEBUG when inspecting what a configuration resolved to.
func Dump(w io.Writer, v any) {
	dumpValue(w, v)
}

func dumpValue(w io.Writer, v any) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetExportedOnly(false)
	printer.SetColoringEnabled(ShouldColor(CaptureEnvironment()))
	printer.Println(v)
}
