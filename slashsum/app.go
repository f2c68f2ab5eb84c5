package slashsum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/byte4ever/slashsum/config"
	"github.com/byte4ever/slashsum/pipeline"
	"github.com/byte4ever/slashsum/report"
)

const saveFlag = "save"

// App runs the command against resolved settings.
type App struct {
	settings config.Settings
	stdout   io.Writer
	logger   *slog.Logger

	home string
	open func(name string) (fs.File, error)
}

// New returns an App printing reports to stdout. A nil logger
// selects slog.Default().
func New(
	settings config.Settings,
	stdout io.Writer,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		settings: settings,
		stdout:   stdout,
		logger:   logger,
		home:     xdg.Home,
	}
}

type invocation struct {
	path string
	arg  string
	save bool
}

// Run executes one command line (without the program name). Help
// and version requests win over anything else on the line.
func (a *App) Run(ctx context.Context, args []string) error {
	const errCtx = "slashsum"

	if text, ok := infoText(args); ok {
		return a.print(text)
	}

	inv, err := a.parse(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(inv.path); errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Arg: inv.arg}
	}

	a.logger.Debug(
		"computing checksums",
		"path", inv.path,
		"algorithms", a.settings.Algorithms,
		"chunk_size", a.settings.ChunkSize,
		"queue_capacity", a.settings.QueueCapacity,
	)

	outcome, err := pipeline.Run(ctx, inv.path, pipeline.Config{
		ChunkSize:     a.settings.ChunkSize,
		QueueCapacity: a.settings.QueueCapacity,
		Algorithms:    a.settings.Algorithms,
		Logger:        a.logger,
		Open:          a.open,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := report.Render(outcome, a.settings.Format)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := a.print(out); err != nil {
		return err
	}

	if !inv.save {
		return nil
	}

	sp, err := report.Save(inv.path, out)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	a.logger.Info("checksums saved", "sidecar", sp)

	return a.print(fmt.Sprintf("Checksums saved to: %s\n", sp))
}

// InfoRequested reports whether args ask for help or version, which
// need neither a valid command line nor valid settings.
func InfoRequested(args []string) bool {
	_, ok := infoText(args)
	return ok
}

func infoText(args []string) (string, bool) {
	for _, arg := range args {
		if arg == "--version" {
			return versionText(), true
		}
	}

	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return helpText, true
		}
	}

	return "", false
}

// parse validates the command line: exactly one path, and --save as
// the only option, before or after it.
func (a *App) parse(args []string) (invocation, error) {
	for _, arg := range args {
		if arg == "--" {
			break
		}

		if isOption(arg) && arg != "--"+saveFlag &&
			!strings.HasPrefix(arg, "--"+saveFlag+"=") {
			return invocation{}, &UsageError{
				Msg: fmt.Sprintf("Invalid option '%s'", arg),
			}
		}
	}

	flags := pflag.NewFlagSet("slashsum", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.SetInterspersed(true)

	save := flags.Bool(saveFlag, false, "save checksums to a .checksum file")

	if err := flags.Parse(args); err != nil {
		return invocation{}, &UsageError{
			Msg: fmt.Sprintf("Invalid option: %v", err),
		}
	}

	if flags.NArg() != 1 {
		return invocation{}, &UsageError{Msg: "Invalid number of arguments"}
	}

	arg := flags.Arg(0)

	return invocation{
		path: expandTilde(arg, a.home),
		arg:  arg,
		save: *save,
	}, nil
}

func (a *App) print(s string) error {
	if _, err := io.WriteString(a.stdout, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func isOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// expandTilde replaces a leading "~" or "~/" with home.
func expandTilde(path, home string) string {
	if home == "" {
		return path
	}

	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}
