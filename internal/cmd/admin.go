package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/app"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/tui"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator views",
	}

	var format string
	leadsCmd := &cobra.Command{
		Use:   "leads",
		Short: "List every submitted lead",
		Long: `List every submitted lead. Requires a session from 'carbonwallet login';
without one you are sent to the login form, or the command fails when
prompts are disabled.

In a terminal the leads are shown in an interactive view (r reloads, q
quits). With --format json or yaml the raw records are written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			rt.startPing(ctx)
			rt.showNotice(ctx)

			in := rt.input()
			format = outputFormat(format, rt.cfg)
			if format != ux.FormatText {
				in.Leads = nil
			}
			a := rt.newApp(in)
			if err := a.Run(ctx, router.AdminLeads); err != nil {
				return err
			}
			return finishLeads(rt, a, format, in.Leads != nil)
		},
	}
	leadsCmd.Flags().StringVar(&format, "format", "", "output format (text, json, yaml)")

	adminCmd.AddCommand(leadsCmd)
	return adminCmd
}

// finishLeads writes what the admin page loaded. viewed is true when the
// interactive view already showed it.
func finishLeads(rt *runtime, a *app.App, format string, viewed bool) error {
	res := a.Leads()
	if !res.Loaded {
		return nil
	}
	if res.Err != nil {
		if !viewed {
			rt.toaster.Error("Could not load leads: " + firstLine(res.Err))
		}
		return reported(res.Err)
	}
	if viewed {
		return nil
	}

	formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: rt.out})
	if err != nil {
		return err
	}
	if format == ux.FormatText {
		return formatter.Format(tui.RenderLeadsTable(res.Leads, rt.loc, rt.styles))
	}
	return formatter.Format(res.Leads)
}

func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
