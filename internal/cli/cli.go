package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("org-transclusion-blocks", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
org-transclusion-blocks - Resolve and transclude block references in org documents.

Usage:
  org-transclusion-blocks [options] [DOC_PATH]

Arguments:
  DOC_PATH
    Path to a single .org file or a directory containing .org files.

Options:
`)
		flagSet.PrintDefaults()
	}

	docFlag := flagSet.String("doc", "", "Path to the document file or directory.")
	dFlag := flagSet.String("d", "", "Path to the document file or directory (shorthand).")
	manifestsPathFlag := flagSet.String("manifests-path", "modules", "Path to the directory containing link type manifests.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	showWarningsFlag := flagSet.Bool("show-warnings", false, "Report non-fatal resolution warnings.")
	noDecorateFlag := flagSet.Bool("no-decorate", false, "Do not add provenance comments above spliced content.")
	writeFlag := flagSet.Bool("write", false, "Write processed documents back to disk instead of a dry run.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *docFlag != "" {
		path = *docFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Document path determined.", "path", path)

	if path == "" {
		slog.Debug("No document path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DocPath:       path,
		ManifestsPath: *manifestsPathFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		ShowWarnings:  *showWarningsFlag,
		NoDecorate:    *noDecorateFlag,
		Write:         *writeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
