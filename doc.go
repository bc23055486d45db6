// Package logkiss is a simple, colorful-by-default logging library
// built on log/slog.
//
// Every line follows one fixed layout:
//
//	2025-04-01 12:34:56,789 WARN  | main.go: 42 | something happened
//
// and every structural element of it — timestamp, level label, file
// location, message — carries a configurable color and style. Colors
// are on by default, even when the output is not a terminal; that is a
// deliberate product decision, not an oversight. Set
// LOGKISS_DISABLE_COLOR=1 or NO_COLOR to turn them off.
//
// # Basic usage
//
//	logkiss.Setup()
//	logkiss.Warning("disk nearly full", "free_gb", 3)
//	logkiss.Error("request failed", "error", err)
//
// # Configuration
//
// Styles come from a YAML document found at the first of: a path given
// to SetupFromYAML, $LOGKISS_CONFIG, ~/.config/logkiss/config.yaml
// (on Windows %APPDATA%\logkiss\config.yaml or
// %USERPROFILE%\.config\logkiss\config.yaml), ./logkiss.yaml.
//
//	levels:
//	  ERROR: {fg: black, bg: red}
//	  CRITICAL: {fg: black, bg: bright_red, style: bold}
//	elements:
//	  timestamp: {fg: white}
//	  filename: {fg: cyan}
//	  message:
//	    ERROR: {fg: bright_red, style: [bold, underline]}
//	handlers:
//	  console: {type: console}
//	  audit: {type: file, path: /var/log/app.log, level: error}
//	root:
//	  level: info
//
// A level or element entry in the document replaces the built-in entry
// for that key wholly; unknown color and style tokens are dropped
// silently, and a missing or malformed file falls back to the built-in
// defaults. Logging never aborts the host process over configuration.
//
// # Environment variables
//
//   - LOGKISS_CONFIG: explicit configuration file location
//   - LOGKISS_SKIP_CONFIG: bypass the configuration file search
//   - LOGKISS_DISABLE_COLOR: disable escape sequences (1/true/yes)
//   - NO_COLOR: disable escape sequences (any value, see no-color.org)
//   - LOGKISS_LEVEL: minimum level (debug..critical)
//   - LOGKISS_LEVEL_FORMAT: display width of level labels (default 5)
//   - LOGKISS_PATH_SHORTEN: trailing path segments to keep (0 = off)
//   - LOGKISS_DEBUG: internal diagnostics for ignored configuration
package logkiss
