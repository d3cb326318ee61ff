package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/five82/parkview/internal/api"
	"github.com/five82/parkview/internal/config"
	"github.com/five82/parkview/internal/logger"
	"github.com/five82/parkview/internal/prefs"
	"github.com/five82/parkview/internal/session"
	"github.com/five82/parkview/internal/toast"
	"github.com/five82/parkview/internal/tokenstore"
	"github.com/five82/parkview/internal/ui"
)

// Options configure the parkview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/parkview/prefs.toml
	Profile    string // keyring entry suffix; ignored by the file store
}

// Env is everything built from configuration, shared by the TUI and the
// CLI subcommands.
type Env struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Client  *api.Client
	Tokens  tokenstore.Store
	Session *session.Manager

	logFile io.Closer
}

// Setup loads configuration, starts logging and wires the session.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile, err := logger.Init(cfg.LogPath(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tokens, err := NewTokenStore(cfg, opts.Profile)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	client, err := api.NewClient(cfg.APIURL)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	log.Info().
		Str("api_url", client.BaseURL()).
		Str("token_store", cfg.TokenStore).
		Msg("parkview starting")

	return &Env{
		Config:  cfg,
		Prefs:   prefs.Load(opts.PrefsPath),
		Client:  client,
		Tokens:  tokens,
		Session: session.NewManager(client, tokens),
		logFile: logFile,
	}, nil
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	if e == nil || e.logFile == nil {
		return nil
	}
	return e.logFile.Close()
}

// NewTokenStore picks the token backend named by cfg.TokenStore.
func NewTokenStore(cfg config.Config, profile string) (tokenstore.Store, error) {
	switch cfg.TokenStore {
	case config.TokenStoreFile, "":
		return tokenstore.File{Path: cfg.TokenPath}, nil
	case config.TokenStoreKeyring:
		return tokenstore.Keyring{Profile: profile}, nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

// ToastOptions converts the configured notifier setup.
func ToastOptions(tc config.ToastConfig) toast.Options {
	return toast.Options{
		Position:         tc.Position,
		Transition:       tc.Transition,
		CloseOnClick:     tc.CloseOnClick,
		PauseOnFocusLoss: tc.PauseOnFocusLoss,
		PauseOnHover:     tc.PauseOnHover,
		CloseButton:      tc.CloseButton,
		AutoClose:        tc.AutoClose,
	}
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	err = ui.Run(ui.Options{
		Context:    ctx,
		Session:    env.Session,
		Backend:    env.Client,
		Toast:      ToastOptions(env.Config.Toast),
		ThemeName:  env.Prefs.Theme,
		StartRoute: env.Prefs.StartRoute,
		PrefsPath:  opts.PrefsPath,
		APIURL:     env.Client.BaseURL(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("ui exited")
		return err
	}
	log.Info().Msg("parkview stopped")
	return nil
}
