package cmd

import (
	"fmt"
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/internal/log"
	"github.com/cottand/circ/scenario"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type commonFlags struct {
	logLevel *int
	color    *string
	debug    *bool
}

func addCommonFlags(cmd *cobra.Command) *commonFlags {
	return &commonFlags{
		logLevel: cmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level"),
		color:    cmd.Flags().String("color", "auto", "colour diagnostics: auto, always or never"),
		debug:    cmd.Flags().Bool("debug", false, "prefix diagnostics with the compiler frame that reported them"),
	}
}

// loadReport reads and runs the scenario at target.
// An internal error while checking is returned as an error rather than crashing the CLI
func loadReport(flags *commonFlags, target string) (report *scenario.Report, err error) {
	log.SetLevel(slog.Level(*flags.logLevel))
	ilerr.SetDebugPrinting(*flags.debug)

	target, err = filepath.Abs(target)
	if err != nil {
		return nil, errors.Wrap(err, "could not get absolute path of target")
	}
	stat, err := os.Stat(target)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat target")
	}
	if stat.IsDir() {
		return nil, errors.Errorf("%s is a directory, expected a scenario file", target)
	}

	f, err := scenario.Load(os.DirFS(filepath.Dir(target)), filepath.Base(target))
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if ice, ok := r.(ilerr.ICE); ok {
				log.DefaultLogger.Error("internal compiler error", "stack", string(ice.Stack()))
			}
			report, err = nil, errors.Errorf("compiler panicked: %v", r)
		}
	}()
	return scenario.Run(f), nil
}

func useColor(w io.Writer, mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	default:
		return false, errors.Errorf("unknown colour mode '%s', expected auto, always or never", mode)
	}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// printDiagnostics writes one line per diagnostic, located by line in file
func printDiagnostics(w io.Writer, file string, errs []ilerr.IleError, color bool) {
	for _, err := range errs {
		location := file
		if at := ir.RangeOf(err); at.IsValid() {
			location = fmt.Sprintf("%s:%d", file, at.Pos())
		}
		formatted := ilerr.FormatWithCode(err)
		if color {
			paint := ansiRed
			if err.Code() == ilerr.Unstructured {
				paint = ansiYellow
			}
			formatted = paint + formatted + ansiReset
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", location, formatted)
	}
}

// warnUnresolved tells about entry point parameters whose type is not fully known,
// as projecting them silently applies defaults
func warnUnresolved(w io.Writer, report *scenario.Report) {
	for _, name := range report.Unresolved() {
		_, _ = fmt.Fprintf(w, "warning: the type of parameter %s is not fully resolved, defaults apply\n", name)
	}
}
