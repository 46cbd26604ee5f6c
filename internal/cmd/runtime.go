package cmd

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/carbonwallet/internal/app"
	"github.com/felixgeelhaar/carbonwallet/internal/contract"
	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/platform"
	"github.com/felixgeelhaar/carbonwallet/internal/session"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
	"github.com/felixgeelhaar/carbonwallet/internal/tui"
)

// runtime is everything a command needs, built once per invocation from
// flags, environment and the configuration file.
type runtime struct {
	cc         *CommandContext
	home       string
	configPath string
	cfg        *Config

	logger   *log.Logger
	backend  storage.Backend
	sessions *session.Store
	notice   *session.Notice
	client   *platform.Client

	loc     *time.Location
	styles  tui.Styles
	toaster *tui.Toaster
	out     io.Writer
	errOut  io.Writer

	interactive bool
}

// promptsAllowed reports whether prompts may be shown. Tests replace it.
var promptsAllowed = tui.ShouldPrompt

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, err
	}

	home, err := resolveHome(cc.Home)
	if err != nil {
		return nil, err
	}
	path := configPath(cc.ConfigPath, home)
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cc, cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log.SetDefaultLogger(logger)

	backend, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, home)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreDriver, "failed to open local state", err)
	}

	sessions := session.NewStore(backend)
	client, err := newClient(cc, cfg, sessions, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	loc, _ := cfg.Location()
	styles := tui.DefaultStyles()
	return &runtime{
		cc:          cc,
		home:        home,
		configPath:  path,
		cfg:         cfg,
		logger:      logger,
		backend:     backend,
		sessions:    sessions,
		notice:      session.NewNotice(backend),
		client:      client,
		loc:         loc,
		styles:      styles,
		toaster:     tui.NewToaster(cmd.ErrOrStderr(), styles),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		interactive: !cc.NoInput && promptsAllowed(),
	}, nil
}

func newLogger(cc *CommandContext, cfg *Config, out io.Writer) (*log.Logger, error) {
	level, format := cfg.Logging.Level, cfg.Logging.Format
	if cc.LogLevel != "" {
		level = cc.LogLevel
	}
	if cc.LogFormat != "" {
		format = cc.LogFormat
	}

	lc, err := log.ConfigFromStrings(level, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid logging flags", err)
	}
	if cc.Debug {
		debug := log.DebugConfig()
		debug.Format = lc.Format
		lc = debug
	}
	lc.Output = out
	return log.New(lc), nil
}

func newClient(cc *CommandContext, cfg *Config, tokens platform.TokenSource, logger *log.Logger) (*platform.Client, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	opts := []platform.Option{
		platform.WithLogger(logger),
		platform.WithTimeout(timeout),
	}
	if cfg.API.ValidateRequests {
		v, err := contract.NewValidator()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to load the API description", err)
		}
		opts = append(opts, platform.WithValidator(v))
	}

	return platform.NewClient(resolveBackendURL(cc.BackendURL, cfg), tokens, opts...), nil
}

func (rt *runtime) Close() error {
	return rt.backend.Close()
}

// startPing checks connectivity in the background; failures only reach
// the debug log.
func (rt *runtime) startPing(ctx context.Context) {
	if !rt.client.Configured() {
		return
	}
	platform.BestEffortPing(ctx, rt.client, rt.logger, platform.PingTimeout)
}

// showNotice asks once per machine for the local-state notice to be
// acknowledged. Only interactive runs ask.
func (rt *runtime) showNotice(ctx context.Context) {
	if !rt.interactive {
		return
	}
	seen, err := rt.notice.Acknowledged(ctx)
	if err != nil {
		rt.logger.LogError(ctx, "read_notice", err)
		return
	}
	if seen {
		return
	}

	rt.toaster.Warn(tui.NoticeText)
	ok, err := tui.PromptForConfirmation("Got it?", true)
	if err != nil || !ok {
		return
	}
	if err := rt.notice.Acknowledge(ctx); err != nil {
		rt.logger.LogError(ctx, "acknowledge_notice", err)
	}
}

// input returns the prompts for interactive runs and nothing otherwise,
// in which case pages work from flags alone.
func (rt *runtime) input() app.Input {
	if !rt.interactive {
		return app.Input{}
	}
	return app.Input{
		Lead:  tui.PromptLead,
		Login: tui.PromptLogin,
		Retry: func(q string) (bool, error) { return tui.PromptForConfirmation(q, true) },
		Leads: func(ctx context.Context, fetch tui.FetchFunc) ([]lead.Lead, error) {
			return tui.RunLeads(ctx, fetch, rt.loc, rt.styles)
		},
	}
}

// newApp wires the navigator and pages.
func (rt *runtime) newApp(in app.Input) *app.App {
	return app.New(app.Options{
		Client:   rt.client,
		Sessions: rt.sessions,
		Notify:   rt.toaster,
		Logger:   rt.logger,
		Input:    in,
	})
}

var _ form.Notifier = (*tui.Toaster)(nil)
