package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/doctor"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/ui"
)

// DoctorOutput is the JSON shape of 'oledmon doctor --json'.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput groups results under one category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput counts results by status.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func newDoctorCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check this machine can drive the display and probe hosts",
		Long: `Run diagnostic checks for the config file, the I2C bus and font, ICMP
permissions and the /proc sources behind the stats screens.

Exits with status 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := a.doctorChecks()
			results := doctor.RunAll(checks)

			var err error
			if asJSON {
				err = writeDoctorJSON(cmd.OutOrStdout(), checks, results)
			} else {
				writeDoctorText(cmd.OutOrStdout(), checks, results)
			}
			if err != nil {
				return err
			}
			if doctor.HasFailures(results) {
				return errors.NewExitError(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

// doctorChecks builds checks against the effective config. A config that fails to load
// is reported by the config checks; the rest run against defaults.
func (a *app) doctorChecks() []doctor.Check {
	cfg, err := a.loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
		if a.displayDriver != "" {
			cfg.Display.Driver = a.displayDriver
		}
	}

	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(a.cfgFile, cfg.Hosts)...)
	checks = append(checks, doctor.NewDisplayChecks(a.fs, cfg.Display)...)
	checks = append(checks, doctor.NewProbeChecks(a.fs, cfg.Probe, a.uid, a.gid)...)
	checks = append(checks, doctor.NewMetricsChecks(a.fs)...)
	return checks
}

func groupByCategory(checks []doctor.Check, results []doctor.CheckResult) map[string][]doctor.CheckResult {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}
	return grouped
}

func writeDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := groupByCategory(checks, results)

	output := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}
	for _, cat := range doctor.CategoryOrder {
		if rs, ok := grouped[cat]; ok {
			output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func writeDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("oledmon Diagnostic Report"))
	fmt.Fprintln(w)

	grouped := groupByCategory(checks, results)
	for _, category := range doctor.CategoryOrder {
		rs, ok := grouped[category]
		if !ok {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, r := range rs {
			symbol, style := ui.SymbolSuccess, successStyle
			switch r.Status {
			case doctor.StatusWarn:
				style = warnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, errorStyle
			}
			fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), r.Message)
			if r.Suggestion != "" && r.Status != doctor.StatusPass {
				for _, line := range strings.Split(r.Suggestion, "\n") {
					fmt.Fprintf(w, "    %s\n", mutedStyle.Render(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	symbol, style := ui.SymbolSuccess, successStyle
	if doctor.HasIssues(results) {
		symbol, style = ui.SymbolFail, errorStyle
	}
	fmt.Fprintf(w, "%s %s\n", style.Render(symbol), doctor.Summary(results))
	fmt.Fprintln(w)
}
