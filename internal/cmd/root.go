package cmd

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "carbonwallet",
		Short: "Carbon Wallet lead capture and admin client",
		Long: `carbonwallet submits early-access leads to the Carbon Wallet API and lets
administrators log in and review the leads collected so far.

Run without a terminal (or with --no-input) every value comes from flags,
so the commands can be scripted.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadDotEnv,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $CARBONWALLET_HOME/config.yaml)")
	flags.String("home", "", "state directory (default is $CARBONWALLET_HOME or ~/.carbonwallet)")
	flags.String("backend-url", "", "backend base URL, overrides configuration and environment")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.Bool("debug", false, "log everything, with source locations")
	flags.Bool("no-input", false, "never prompt; take every value from flags")

	root.AddCommand(
		newLeadCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newAdminCmd(),
		newDoctorCmd(),
		newNoticeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// loadDotEnv reads .env from the working directory. Variables that are
// already set win.
func loadDotEnv(*cobra.Command, []string) error {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt by the caller.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
