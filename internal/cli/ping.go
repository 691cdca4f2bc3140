package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/dashboard"
	"github.com/rileyhilliard/oledmon/internal/display"
	"github.com/rileyhilliard/oledmon/internal/host"
	"github.com/rileyhilliard/oledmon/internal/liveness"
	"github.com/rileyhilliard/oledmon/internal/logger"
	"github.com/rileyhilliard/oledmon/internal/screen"
	"github.com/rileyhilliard/oledmon/internal/ui"
)

type pingOptions struct {
	dashboard     DashboardFlags
	probe         string
	probeTimeout  string
	port          int
	privileged    bool
	roundInterval time.Duration
	warmup        time.Duration
}

func newPingCmd(a *app) *cobra.Command {
	opts := &pingOptions{}

	cmd := &cobra.Command{
		Use:   "ping <address,label>...",
		Short: "Ping hosts and show up/down status on the display",
		Long: `Probe each host in the background and show its status on rotating pages of
four. A host is marked down after two consecutive failed probes and back up
after one success.

Hosts come from the arguments, or from the 'hosts' list in the config file
when no arguments are given.

Examples:
  oledmon ping 192.168.1.1,router 192.168.1.2,nas
  oledmon ping --probe tcp --port 443 10.0.0.5,web
  oledmon ping --display terminal 10.0.0.1,router`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPing(cmd, a, opts, args)
		},
	}

	AddDashboardFlags(cmd, &opts.dashboard)
	f := cmd.Flags()
	f.StringVar(&opts.probe, "probe", "", "probe method: icmp or tcp")
	f.StringVar(&opts.probeTimeout, "probe-timeout", "", "per-probe timeout (e.g., 2s, 500ms)")
	f.IntVar(&opts.port, "port", 0, "TCP port for --probe tcp")
	f.BoolVar(&opts.privileged, "privileged", false, "use raw ICMP sockets (requires root or CAP_NET_RAW)")
	f.DurationVar(&opts.roundInterval, "round-interval", 0, "pause between probe rounds")
	f.DurationVar(&opts.warmup, "warmup", 0, "wait before the first frame so initial probes can finish")

	return cmd
}

// apply copies explicitly set ping flags into cfg.
func (o *pingOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	if err := o.dashboard.Apply(cmd, &cfg.Dashboard); err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("probe") {
		cfg.Probe.Method = o.probe
	}
	if f.Changed("probe-timeout") {
		d, err := ParseProbeTimeout(o.probeTimeout)
		if err != nil {
			return err
		}
		cfg.Probe.Timeout = d
	}
	if f.Changed("port") {
		cfg.Probe.Port = o.port
	}
	if f.Changed("privileged") {
		cfg.Probe.Privileged = o.privileged
	}
	if f.Changed("round-interval") {
		cfg.Monitor.RoundInterval = o.roundInterval
	}
	if f.Changed("warmup") {
		cfg.Monitor.Warmup = o.warmup
	}
	return nil
}

func runPing(cmd *cobra.Command, a *app, opts *pingOptions, args []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	entries := args
	if len(entries) == 0 {
		entries = cfg.Hosts
	}
	targets, err := config.ParseTargets(entries)
	if err != nil {
		return err
	}

	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	log := a.newLogger(cfg, stderr)

	fonts, err := display.LoadFonts(cfg.Display.Font)
	if err != nil {
		return err
	}
	pinger, err := a.newPinger(cfg.Probe)
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
	if err := disp.Clear(); err != nil {
		log.Warn("failed to clear display: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := liveness.NewMonitor(targets,
		host.NewChecker(pinger, cfg.Probe.Timeout, log),
		liveness.WithRoundInterval(cfg.Monitor.RoundInterval),
		liveness.WithStopTimeout(cfg.Monitor.StopTimeout),
		liveness.WithLogger(log),
	)
	mon.Start()
	defer mon.Stop()

	if !a.quiet {
		ui.PrintHeader(stderr, ui.HeaderInfo{Version: formatVersion(version), Mode: "ping monitor", Display: cfg.Display.Driver})
	}
	log.Info("starting ping monitor for %d host(s) via %s", len(targets), cfg.Probe.Method)

	// Give the first round a moment so the first frame reflects real results.
	if err := a.clock.Sleep(ctx, cfg.Monitor.Warmup); err != nil {
		return finishEarly(disp, log)
	}

	screens := screen.NewPingScreens(disp, fonts, mon, targets)
	if !a.quiet {
		fmt.Fprint(stderr, ui.RenderHostSummary(hostStatuses(mon), len(screens)))
	}

	db, err := dashboard.New(disp, screens,
		dashboard.WithSwitchInterval(cfg.Dashboard.SwitchInterval),
		dashboard.WithRefreshInterval(cfg.Dashboard.RefreshInterval),
		dashboard.WithClock(a.clock),
		dashboard.WithLogger(log),
	)
	if err != nil {
		return err
	}
	return db.Run(ctx)
}

// finishEarly clears the display when interrupted before the dashboard started.
func finishEarly(disp display.Display, log logger.Logger) error {
	if err := disp.Clear(); err != nil {
		log.Warn("failed to clear display: %v", err)
	}
	return nil
}

func hostStatuses(mon *liveness.Monitor) []ui.HostStatus {
	snap := mon.Snapshot()
	out := make([]ui.HostStatus, len(snap))
	for i, s := range snap {
		out[i] = ui.HostStatus{Address: s.Address, Label: s.Label, Alive: s.Alive}
	}
	return out
}
