package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/errors"
)

// DashboardFlags holds the rotation flags shared by ping and stats.
type DashboardFlags struct {
	SwitchInterval  int
	RefreshInterval float64
}

// AddDashboardFlags registers --switch-interval and --refresh-interval on a command.
func AddDashboardFlags(cmd *cobra.Command, flags *DashboardFlags) {
	cmd.Flags().IntVar(&flags.SwitchInterval, "switch-interval", 10, "seconds between screen switches")
	cmd.Flags().Float64Var(&flags.RefreshInterval, "refresh-interval", 1, "seconds between redraws of the current screen")
}

// Apply copies explicitly set flags into cfg. Unset flags leave config file values alone.
func (f *DashboardFlags) Apply(cmd *cobra.Command, cfg *config.DashboardConfig) error {
	if cmd.Flags().Changed("switch-interval") {
		if f.SwitchInterval <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("--switch-interval must be positive, got %d", f.SwitchInterval),
				"Try --switch-interval 10.")
		}
		cfg.SwitchInterval = time.Duration(f.SwitchInterval) * time.Second
	}
	if cmd.Flags().Changed("refresh-interval") {
		if f.RefreshInterval <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("--refresh-interval must be positive, got %g", f.RefreshInterval),
				"Try --refresh-interval 1 or 0.5.")
		}
		d := time.Duration(f.RefreshInterval * float64(time.Second))
		if d <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("--refresh-interval %g is shorter than a nanosecond", f.RefreshInterval),
				"Try --refresh-interval 1 or 0.5.")
		}
		cfg.RefreshInterval = d
	}
	return nil
}

// ParseProbeTimeout parses a probe timeout string into a duration.
// Returns zero duration if the flag is empty.
func ParseProbeTimeout(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid timeout", flag),
			"Try something like 2s, 1500ms, or 500ms.")
	}
	return duration, nil
}
