package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/platform"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

// Environment variables read at startup.
const (
	envBackendURL       = "CARBONWALLET_BACKEND_URL"
	envBackendURLLegacy = "BACKEND_URL"
	envHome             = "CARBONWALLET_HOME"
)

// Config is the user configuration stored at ~/.carbonwallet/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Display DisplayConfig `yaml:"display" json:"display"`
}

type APIConfig struct {
	BackendURL       string `yaml:"backend_url" json:"backend_url"`
	Timeout          string `yaml:"timeout" json:"timeout"` // Go duration, "0" disables
	ValidateRequests bool   `yaml:"validate_requests" json:"validate_requests"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver"` // "file" or "sqlite"
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" json:"format"` // "text" or "json"
}

type DisplayConfig struct {
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, empty for local time
	Format   string `yaml:"format" json:"format"`                         // "text", "json", "yaml"
}

// defaultConfig returns the configuration written on first use.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout: platform.DefaultTimeout.String(),
		},
		Storage: StorageConfig{
			Driver: storage.DriverFile,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Display: DisplayConfig{
			Format: ux.FormatText,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	switch c.Storage.Driver {
	case "", storage.DriverFile, storage.DriverSQLite:
	default:
		return invalidConfig("storage.driver", c.Storage.Driver, "file or sqlite")
	}
	if _, err := log.ConfigFromStrings(c.Logging.Level, c.Logging.Format); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid logging settings", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Display.Format {
	case "", ux.FormatText, ux.FormatJSON, ux.FormatYAML:
	default:
		return invalidConfig("display.format", c.Display.Format, "text, json or yaml")
	}
	return nil
}

// RequestTimeout parses api.timeout. Empty means the client default.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return platform.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d < 0 {
		return 0, invalidConfig("api.timeout", c.API.Timeout, "a duration such as 30s, or 0 to disable")
	}
	return d, nil
}

// Location resolves display.timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, invalidConfig("display.timezone", c.Display.Timezone, "an IANA zone such as Europe/Berlin")
	}
	return loc, nil
}

func invalidConfig(key, value, want string) error {
	return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid %s %q: want %s", key, value, want)).
		WithSuggestion(fmt.Sprintf("Run 'carbonwallet config set %s <value>'", key))
}

// resolveHome picks the state directory: flag, then CARBONWALLET_HOME,
// then ~/.carbonwallet.
func resolveHome(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(envHome); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".carbonwallet"), nil
}

// configPath returns the flag value or config.yaml under home.
func configPath(flag, home string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(home, "config.yaml")
}

// resolveBackendURL applies the override order: flag, then
// CARBONWALLET_BACKEND_URL, then BACKEND_URL, then the config file.
func resolveBackendURL(flag string, cfg *Config) string {
	for _, v := range []string{flag, os.Getenv(envBackendURL), os.Getenv(envBackendURLLegacy), cfg.API.BackendURL} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// loadConfig loads the configuration, creating a default file if none exists.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := saveConfig(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to read "+path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to parse "+path, err)
	}
	return cfg, nil
}

// saveConfig writes cfg to path with owner-only permissions.
func saveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.NewStoreWriteError(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.NewStoreWriteError(path, err)
	}
	return nil
}

// configKeys lists every key accepted by config get/set, in display order.
var configKeys = []string{
	"api.backend_url",
	"api.timeout",
	"api.validate_requests",
	"storage.driver",
	"storage.path",
	"logging.level",
	"logging.format",
	"display.timezone",
	"display.format",
}

func getConfigValue(cfg *Config, key string) (string, error) {
	switch key {
	case "api.backend_url":
		return cfg.API.BackendURL, nil
	case "api.timeout":
		return cfg.API.Timeout, nil
	case "api.validate_requests":
		return strconv.FormatBool(cfg.API.ValidateRequests), nil
	case "storage.driver":
		return cfg.Storage.Driver, nil
	case "storage.path":
		return cfg.Storage.Path, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	case "display.timezone":
		return cfg.Display.Timezone, nil
	case "display.format":
		return cfg.Display.Format, nil
	default:
		return "", unknownKey(key)
	}
}

// setConfigValue sets key and validates the result. cfg is left unchanged
// when the new value is invalid.
func setConfigValue(cfg *Config, key, value string) error {
	next := *cfg
	switch key {
	case "api.backend_url":
		next.API.BackendURL = strings.TrimSpace(value)
	case "api.timeout":
		next.API.Timeout = value
	case "api.validate_requests":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalidConfig(key, value, "true or false")
		}
		next.API.ValidateRequests = b
	case "storage.driver":
		next.Storage.Driver = value
	case "storage.path":
		next.Storage.Path = value
	case "logging.level":
		next.Logging.Level = value
	case "logging.format":
		next.Logging.Format = value
	case "display.timezone":
		next.Display.Timezone = value
	case "display.format":
		next.Display.Format = value
	default:
		return unknownKey(key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeConfigKeyUnset, fmt.Sprintf("unknown configuration key: %s", key)).
		WithSuggestion("Known keys: " + strings.Join(configKeys, ", "))
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit carbonwallet configuration",
		Long: `Manage the configuration stored at ~/.carbonwallet/config.yaml

Keys:
  api.backend_url         Base URL of the Carbon Wallet backend (without /api)
  api.timeout             Per-request timeout, e.g. 30s; 0 disables
  api.validate_requests   Check requests against the API description before sending
  storage.driver          file or sqlite
  storage.path            Location of the state file
  logging.level           debug, info, warn or error
  logging.format          text or json
  display.timezone        Zone used for created_at, empty for local time
  display.format          Default output format: text, json or yaml

Environment variables CARBONWALLET_BACKEND_URL and BACKEND_URL override
api.backend_url; CARBONWALLET_HOME moves the whole directory.

Examples:
  carbonwallet config view
  carbonwallet config set api.backend_url https://api.example.com
  carbonwallet config get api.timeout
  carbonwallet config path
`,
	}

	var viewFormat string
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, cfg, err := openConfig(cmd)
			if err != nil {
				return err
			}
			if viewFormat == ux.FormatText || viewFormat == "" {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
				return nil
			}
			formatter, err := ux.NewFormatter(viewFormat, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			return formatter.Format(cfg)
		},
	}
	viewCmd.Flags().StringVar(&viewFormat, "format", ux.FormatText, "output format (text, json, yaml)")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := openConfig(cmd)
			if err != nil {
				return err
			}
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := openConfig(cmd)
			if err != nil {
				return err
			}
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := saveConfig(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", args[0], args[1])
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			home, err := resolveHome(cc.Home)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), configPath(cc.ConfigPath, home))
			return nil
		},
	}

	configCmd.AddCommand(viewCmd, getCmd, setCmd, pathCmd)
	return configCmd
}

// openConfig loads the configuration selected by the persistent flags.
func openConfig(cmd *cobra.Command) (string, *Config, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return "", nil, err
	}
	home, err := resolveHome(cc.Home)
	if err != nil {
		return "", nil, err
	}
	path := configPath(cc.ConfigPath, home)
	cfg, err := loadConfig(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}
