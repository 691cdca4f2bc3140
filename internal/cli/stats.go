package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/dashboard"
	"github.com/rileyhilliard/oledmon/internal/display"
	"github.com/rileyhilliard/oledmon/internal/screen"
)

type statsOptions struct {
	dashboard DashboardFlags
	screen    string
	once      bool
}

func newStatsCmd(a *app) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Rotate system, network and clock screens",
		Long: `Show local system metrics on rotating screens:

  system   CPU, memory, temperature and disk usage
  network  local IP, bytes sent and received, established connections
  clock    date and time

With --once, the selected screen is drawn a single time and the display keeps
showing it after oledmon exits.

Examples:
  oledmon stats
  oledmon stats --screen network --once
  oledmon stats --screen 2 --switch-interval 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, a, opts)
		},
	}

	AddDashboardFlags(cmd, &opts.dashboard)
	cmd.Flags().StringVar(&opts.screen, "screen", "", "screen to show: system, network, clock, or a 0-based index")
	cmd.Flags().BoolVar(&opts.once, "once", false, "show the selected screen once and exit without clearing the display")

	return cmd
}

func runStats(cmd *cobra.Command, a *app, opts *statsOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.dashboard.Apply(cmd, &cfg.Dashboard); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	start := 0
	if opts.screen != "" {
		start, err = screen.ParseSelector(opts.screen, screen.StatsScreenNames)
		if err != nil {
			return err
		}
	}

	log := a.newLogger(cfg, cmd.ErrOrStderr())

	fonts, err := display.LoadFonts(cfg.Display.Font)
	if err != nil {
		return err
	}

	disp, err := a.open(cfg, cmd, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := disp.Close(); err != nil {
			log.Warn("failed to close display: %v", err)
		}
	}()

	screens := screen.NewStatsScreens(disp, fonts, a.newProvider(log), a.now)
	db, err := dashboard.New(disp, screens,
		dashboard.WithStart(start),
		dashboard.WithSwitchInterval(cfg.Dashboard.SwitchInterval),
		dashboard.WithRefreshInterval(cfg.Dashboard.RefreshInterval),
		dashboard.WithClock(a.clock),
		dashboard.WithLogger(log),
	)
	if err != nil {
		return err
	}

	// A one-shot render must leave whatever the panel showed before untouched
	// except for the new frame, so the display is never cleared.
	if opts.once {
		return db.RunOnce()
	}

	if err := disp.Clear(); err != nil {
		log.Warn("failed to clear display: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return db.Run(ctx)
}
