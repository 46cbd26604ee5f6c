package cmd

import (
	"github.com/spf13/cobra"
)

// CommandContext holds the persistent flags of one invocation, so commands
// never read package-level flag variables.
type CommandContext struct {
	ConfigPath string
	Home       string
	BackendURL string
	LogLevel   string
	LogFormat  string
	Debug      bool
	NoInput    bool
}

// NewCommandContext extracts command context from cobra.Command flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	home, err := cmd.Flags().GetString("home")
	if err != nil {
		return nil, err
	}

	backendURL, err := cmd.Flags().GetString("backend-url")
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}

	noInput, err := cmd.Flags().GetBool("no-input")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		ConfigPath: configPath,
		Home:       home,
		BackendURL: backendURL,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		Debug:      debug,
		NoInput:    noInput,
	}, nil
}
