package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

type leadFlags struct {
	draft     lead.Draft
	noConsent bool
	format    string
}

func newLeadCmd() *cobra.Command {
	f := &leadFlags{draft: lead.NewDraft()}

	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Request early access by submitting a lead",
		Long: `Submit an early-access request to Carbon Wallet.

In a terminal the form is shown with any flag values filled in. Without a
terminal (or with --no-input) name and email must be given as flags.

Examples:
  carbonwallet lead
  carbonwallet lead --name "Ava Smith" --email ava@example.com --company-size 51-200
  carbonwallet lead --name Ava --email ava@example.com --interest rewards --interest mrv --format json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLead(cmd, f)
		},
	}

	d := &f.draft
	flags := cmd.Flags()
	flags.StringVar(&d.Name, "name", "", "your full name (required)")
	flags.StringVar(&d.Email, "email", "", "work email (required)")
	flags.StringVar(&d.Company, "company", "", "company name")
	flags.StringVar(&d.Phone, "phone", "", "phone number, international format preferred")
	flags.StringVar(&d.Country, "country", "", "country")
	flags.StringVar(&d.Industry, "industry", "", "industry")
	flags.StringVar(&d.CompanySize, "company-size", "", optionsUsage("company size", lead.CompanySizes))
	flags.StringVar(&d.TeamSize, "team-size", "", optionsUsage("team size", lead.TeamSizes))
	flags.StringVar(&d.Timeline, "timeline", "", optionsUsage("timeline", lead.Timelines))
	flags.StringVar(&d.Message, "message", "", "anything else we should know")
	flags.StringVar(&d.Source, "source", lead.DefaultSource, "where you heard about us")
	flags.StringSliceVar(&d.Interests, "interest", nil, "area of interest (repeatable)")
	flags.BoolVar(&f.noConsent, "no-consent", false, "do not agree to be contacted")
	flags.StringVar(&f.format, "format", "", "output format for the stored lead (text, json, yaml)")

	return cmd
}

func optionsUsage(what string, options []string) string {
	return fmt.Sprintf("%s (one of %q)", what, options)
}

func runLead(cmd *cobra.Command, f *leadFlags) error {
	ctx := cmd.Context()
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	format := outputFormat(f.format, rt.cfg)
	formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: rt.out})
	if err != nil {
		return err
	}

	rt.startPing(ctx)
	rt.showNotice(ctx)

	a := rt.newApp(rt.input())
	a.LeadForm().Update(func(d *lead.Draft) {
		key := d.SubmissionKey
		*d = f.draft.Clone()
		d.SubmissionKey = key
		d.Consent = !f.noConsent
	})

	if err := a.Run(ctx, router.Home); err != nil {
		return err
	}

	res := a.LeadResult()
	switch res.Outcome {
	case form.Submitted:
		if format == ux.FormatText {
			return formatter.Format(fmt.Sprintf("Lead %s recorded", res.Lead.ID))
		}
		return formatter.Format(res.Lead)
	case form.Invalid:
		return reported(errors.Wrap(errors.ErrCodeLeadInvalid, "lead was not submitted", res.Err))
	case form.Failed:
		return reported(res.Err)
	}
	return nil
}

// outputFormat is the flag value or the configured default.
func outputFormat(flag string, cfg *Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Display.Format != "" {
		return cfg.Display.Format
	}
	return ux.FormatText
}
