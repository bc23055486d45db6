package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/logkiss/logkiss"
	"gitlab.com/tozd/go/errors"
)

func main() {
	fmt.Println("=== logkiss demonstration ===")
	fmt.Println()

	logkiss.Setup()
	logkiss.SetLevel(logkiss.LevelDebug)

	fmt.Println("1. All levels:")
	logkiss.Debug("debug message")
	logkiss.Info("info message", "component", "demo")
	logkiss.Warning("warning message", "issue", "example")
	logkiss.Error("error message", "attempt", 3)
	logkiss.Critical("critical message")

	// The default slog logger goes through logkiss too.
	slog.Info("via slog", "component", "demo")

	fmt.Println()
	fmt.Println("2. Errors with stack traces:")
	err := errors.WithDetails(
		errors.WithStack(errors.New("database connection failed")),
		"host", "localhost",
		"port", 5432,
	)
	logkiss.Error("request failed", "error", err)

	fmt.Println()
	fmt.Println("3. Custom styles from YAML:")
	if err := logkiss.SetupFromYAML("config.yaml"); err != nil {
		logkiss.Warning("no config.yaml, keeping defaults")
	}
	logkiss.Error("styled by config.yaml, if present")

	fmt.Println()
	fmt.Println("4. Resolved configuration:")
	logkiss.DumpConfig(os.Stdout)
}
