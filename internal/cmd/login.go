package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/session"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

func newLoginCmd() *cobra.Command {
	var (
		creds         form.Credentials
		passwordStdin bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator",
		Long: `Exchange administrator credentials for an access token and open the
leads view. The token is stored locally until 'carbonwallet logout'.

Examples:
  carbonwallet login
  carbonwallet login --username admin --password-stdin < secret.txt
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				pw, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				creds.Password = pw
			}

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.interactive && (strings.TrimSpace(creds.Username) == "" || creds.Password == "") {
				return fmt.Errorf(`required flag(s) "username" and "password" not set; prompts are disabled`)
			}

			ctx := cmd.Context()
			rt.startPing(ctx)
			rt.showNotice(ctx)

			in := rt.input()
			format = outputFormat(format, rt.cfg)
			if format != ux.FormatText {
				in.Leads = nil
			}
			a := rt.newApp(in)
			a.LoginForm().SetCredentials(creds)

			if err := a.Run(ctx, router.Login); err != nil {
				return err
			}

			res := a.LoginResult()
			if res.Outcome != form.Submitted {
				if res.Err == nil {
					return reported(errors.NewInvalidCredentialsError(0))
				}
				return reported(res.Err)
			}
			return finishLeads(rt, a, format, in.Leads != nil)
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "administrator username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "administrator password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().StringVar(&format, "format", "", "output format for the leads (text, json, yaml)")

	return cmd
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			rt.toaster.Success("Logged out")
			return nil
		},
	}
}

// StatusReport is the output of 'carbonwallet status'.
type StatusReport struct {
	LoggedIn bool          `json:"logged_in" yaml:"logged_in"`
	Backend  string        `json:"backend" yaml:"backend"`
	Storage  string        `json:"storage" yaml:"storage"`
	Session  *session.Info `json:"session,omitempty" yaml:"session,omitempty"`
	Expired  bool          `json:"expired" yaml:"expired"`

	loc *time.Location
}

func (r StatusReport) String() string {
	var b strings.Builder
	backend := r.Backend
	if backend == "" {
		backend = "(not configured)"
	}
	fmt.Fprintf(&b, "Backend:  %s\n", backend)
	fmt.Fprintf(&b, "Storage:  %s\n", r.Storage)
	if !r.LoggedIn {
		b.WriteString("Session:  not logged in\n")
		b.WriteString("Use 'carbonwallet login' to authenticate.")
		return b.String()
	}

	fmt.Fprintf(&b, "Session:  logged in (token %s)\n", r.Session.Fingerprint)
	if r.Session.Subject != "" {
		fmt.Fprintf(&b, "Subject:  %s\n", r.Session.Subject)
	}
	switch {
	case r.Session.ExpiresAt == nil:
		b.WriteString("Expires:  unknown")
	case r.Expired:
		fmt.Fprintf(&b, "Expires:  %s (expired)", r.Session.ExpiresAt.In(r.loc).Format("2006-01-02 15:04"))
	default:
		fmt.Fprintf(&b, "Expires:  %s", r.Session.ExpiresAt.In(r.loc).Format("2006-01-02 15:04"))
	}
	return b.String()
}

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Long: `Show whether a session token is stored. Tokens are never printed; a short
fingerprint identifies them instead. When the token is a JWT its subject and
expiry are shown. Nothing is sent to the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			formatter, err := ux.NewFormatter(outputFormat(format, rt.cfg), &ux.FormatterOptions{Writer: rt.out})
			if err != nil {
				return err
			}

			token, ok, err := rt.sessions.Get(cmd.Context())
			if err != nil {
				return err
			}
			report := StatusReport{
				LoggedIn: ok,
				Backend:  rt.client.BaseURL(),
				Storage:  rt.sessions.Location(),
				loc:      rt.loc,
			}
			if ok {
				info := session.Describe(token)
				report.Session = &info
				report.Expired = info.Expired(time.Now())
			}
			return formatter.Format(report)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format (text, json, yaml)")
	return cmd
}
