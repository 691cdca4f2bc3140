package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/dashboard"
	"github.com/rileyhilliard/oledmon/internal/display"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/host"
	"github.com/rileyhilliard/oledmon/internal/logger"
	"github.com/rileyhilliard/oledmon/internal/metrics"
	"github.com/rileyhilliard/oledmon/internal/ui"
)

// app carries global flag values and the collaborators commands depend on.
type app struct {
	cfgFile       string
	displayDriver string
	verbose       bool
	quiet         bool
	noColor       bool

	openDisplay func(config.DisplayConfig, display.OpenOptions) (display.Display, error)
	newPinger   func(config.ProbeConfig) (host.Pinger, error)
	newProvider func(logger.Logger) metrics.Provider
	clock       dashboard.Clock
	now         func() time.Time

	// fs, uid and gid are what doctor inspects.
	fs  afero.Fs
	uid int
	gid int
}

func newApp() *app {
	return &app{
		openDisplay: display.Open,
		newPinger:   host.NewPinger,
		newProvider: func(log logger.Logger) metrics.Provider {
			return metrics.NewCollector(metrics.WithLogger(log))
		},
		clock: dashboard.RealClock(),
		now:   time.Now,
		fs:    afero.NewOsFs(),
		uid:   os.Geteuid(),
		gid:   os.Getegid(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "oledmon",
		Short: "Status dashboard for small OLED displays",
		Long: `oledmon drives a 128x64 SSD1306 OLED panel with a rotating status dashboard.

Use 'ping' to watch a set of hosts, or 'stats' for local system metrics.
Without a panel attached, --display terminal previews frames in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.noColor {
				ui.DisableColors()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./oledmon.yaml or ~/.config/oledmon/config.yaml)")
	pf.StringVar(&a.displayDriver, "display", "", "display driver: ssd1306 or terminal")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newPingCmd(a),
		newStatsCmd(a),
		newConfigCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits with the mapped status code.
func Execute() {
	root := newRootCmd(newApp())
	err := root.Execute()
	if _, silent := errors.GetExitCode(err); err != nil && !silent {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		if isUnknownCommandError(err) {
			fmt.Fprintln(os.Stderr, "Run 'oledmon --help' for usage.")
		}
	}
	os.Exit(errors.ExitCode(err))
}

// loadConfig reads the config file and applies global flag overrides.
// The result is not validated; callers validate after applying their own flags.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(a.cfgFile)
	if err != nil {
		return nil, err
	}
	if a.displayDriver != "" {
		cfg.Display.Driver = a.displayDriver
	}
	switch {
	case a.verbose:
		cfg.Log.Level = "debug"
	case a.quiet:
		cfg.Log.Level = "error"
	}
	return cfg, nil
}

func (a *app) newLogger(cfg *config.Config, w io.Writer) logger.Logger {
	level := cfg.Log.Level
	if !a.verbose && !a.quiet {
		level = logger.LevelFromEnv(level)
	}
	return logger.New(logger.Options{Level: level, Name: "oledmon", Output: w})
}

func (a *app) open(cfg *config.Config, cmd *cobra.Command, log logger.Logger) (display.Display, error) {
	return a.openDisplay(cfg.Display, display.OpenOptions{
		Out:     cmd.OutOrStdout(),
		NoColor: a.noColor,
		Log:     log,
	})
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") || strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag")
}

// extractUnknownCommand returns the quoted command name from a cobra error, or "".
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
