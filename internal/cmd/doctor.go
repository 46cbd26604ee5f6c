package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/health"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

func newDoctorCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, connectivity, storage and session",
		Long: `Run diagnostics to check that carbonwallet is ready to use.

Checks include:
  • Backend URL configured
  • Backend reachable
  • Local state writable
  • Session present and not expired

Examples:
  carbonwallet doctor
  carbonwallet doctor --format json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			format = outputFormat(format, rt.cfg)
			formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: rt.out})
			if err != nil {
				return err
			}

			manager := health.NewManager()
			manager.AddChecker(health.NewBackendConfigChecker(rt.client.BaseURL()))
			manager.AddChecker(health.NewBackendChecker(rt.client))
			manager.AddChecker(health.NewStorageChecker(rt.backend))
			manager.AddChecker(health.NewSessionChecker(rt.sessions))

			report := manager.Run(cmd.Context())
			if format == ux.FormatText {
				err = formatter.Format(doctorText{report: report, rt: rt})
			} else {
				err = formatter.Format(report)
			}
			if err != nil {
				return err
			}

			if report.Status == health.StatusUnhealthy {
				return reported(fmt.Errorf("%d check(s) failed", countStatus(report, health.StatusUnhealthy)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format (text, json, yaml)")
	return cmd
}

func countStatus(report health.Report, status health.Status) int {
	n := 0
	for _, c := range report.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}

type doctorText struct {
	report health.Report
	rt     *runtime
}

func (d doctorText) String() string {
	styles := d.rt.styles
	var b strings.Builder
	b.WriteString(styles.Title.Render("carbonwallet doctor"))
	b.WriteString("\n\n")
	for _, c := range d.report.Checks {
		var icon string
		switch c.Status {
		case health.StatusHealthy:
			icon = styles.Success.Render("✓")
		case health.StatusDegraded:
			icon = styles.Warning.Render("!")
		default:
			icon = styles.Error.Render("✗")
		}
		fmt.Fprintf(&b, "%s %-20s %s\n", icon, c.Name, c.Message)
		for _, key := range []string{"url", "location", "fingerprint", "subject", "expires_at", "error", "hint"} {
			if v, ok := c.Details[key]; ok {
				b.WriteString(styles.Muted.Render(fmt.Sprintf("    %s: %v", key, v)))
				b.WriteString("\n")
			}
		}
	}
	fmt.Fprintf(&b, "\nOverall: %s", d.report.Status)
	return b.String()
}
