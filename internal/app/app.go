package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/auth"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/biometric"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/config"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/kvstore"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/notify"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/securestore"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/services"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/storage"
)

// Options overrides collaborators that default to the process terminal.
type Options struct {
	// Sink receives fired reminders. Defaults to a notify.LogSink.
	Sink notify.Sink
	// Biometric defaults to a biometric.TerminalAuthenticator enrolled with
	// the configured device PIN.
	Biometric services.BiometricAuthenticator
	// PromptOut is where the terminal challenge writes its prompt. Defaults
	// to os.Stderr.
	PromptOut io.Writer
	// Clock defaults to time.Now.
	Clock services.Clock
}

type App struct {
	cfg *config.Config
	log logging.Logger

	gateway   *storage.Gateway
	kv        *kvstore.SQLiteStore
	secrets   *securestore.FileStore
	scheduler *notify.CronScheduler

	Session     *services.SessionService
	Preferences *services.PreferencesService
	Tasks       *services.TaskManager
	Notes       *services.NoteManager
}

// New opens every store named by cfg and builds the services. The scheduler
// is not started until Init.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, opts Options) (*App, error) {
	a := &App{cfg: cfg, log: logger.With("component", "app")}

	a.gateway = storage.NewGateway(cfg.DatabasePath(), logger)
	if err := a.gateway.Initialize(ctx); err != nil {
		return nil, err
	}

	kv, err := kvstore.Open(ctx, cfg.PreferencesPath())
	if err != nil {
		_ = a.gateway.Close()
		return nil, err
	}
	a.kv = kv

	secrets, err := securestore.Open(cfg.SecurePath(), []byte(cfg.DeviceSecret))
	if err != nil {
		_ = a.closeStores()
		return nil, err
	}
	a.secrets = secrets

	signingKey, err := a.signingKey(ctx, cfg.TokenSecret)
	if err != nil {
		_ = a.closeStores()
		return nil, err
	}

	bio := opts.Biometric
	if bio == nil {
		if bio, err = terminalAuthenticator(cfg.DevicePIN, opts.PromptOut); err != nil {
			_ = a.closeStores()
			return nil, err
		}
	}

	sink := opts.Sink
	if sink == nil {
		sink = notify.LogSink{Log: logger.With("component", "reminders")}
	}
	a.scheduler = notify.NewCronScheduler(sink, logger)

	demo := auth.NewDemoProvider(cfg.AuthLatency)
	a.Session = services.NewSessionService(services.SessionDeps{
		Verifier:  demo,
		Registrar: demo,
		Tokens:    auth.NewJWTIssuer(signingKey, cfg.SessionTTL),
		Secrets:   a.secrets,
		KV:        a.kv,
		Users:     a.gateway,
		Logger:    logger,
	})
	a.Preferences = services.NewPreferencesService(a.kv, bio, logger)
	a.Tasks = services.NewTaskManager(a.gateway, a.scheduler, logger, opts.Clock)
	a.Notes = services.NewNoteManager(a.gateway, logger, opts.Clock)

	return a, nil
}

// signingKeyName is the secure store entry holding the generated session
// signing key.
const signingKeyName = "session_signing_key"

// signingKey returns the configured token secret or, when none is
// configured, a per-device key generated once and kept in the secure store.
func (a *App) signingKey(ctx context.Context, configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	key, err := a.secrets.Get(ctx, signingKeyName)
	if err != nil || key != nil {
		return key, err
	}

	s, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	if err := a.secrets.Set(ctx, signingKeyName, []byte(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func terminalAuthenticator(pin string, out io.Writer) (*biometric.TerminalAuthenticator, error) {
	if out == nil {
		out = os.Stderr
	}
	var hash []byte
	if pin != "" {
		h, err := biometric.HashPIN(pin)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	return biometric.NewTerminalAuthenticator(out, hash), nil
}

// Init starts the reminder scheduler, loads the settings and restores a
// stored session. When a session is restored the user's data is loaded.
func (a *App) Init(ctx context.Context) {
	a.scheduler.Start()
	a.Preferences.Init(ctx)
	a.Session.Init(ctx)
	if a.Session.IsAuthenticated() {
		a.LoadUserData(ctx)
	}
}

// LoadUserData loads the tasks, categories and notes of the signed-in user
// and re-registers the reminders of tasks still due. It does nothing when
// nobody is signed in.
func (a *App) LoadUserData(ctx context.Context) {
	u := a.Session.User()
	if u == nil {
		return
	}
	a.Tasks.LoadTasks(ctx, u.ID)
	a.Tasks.RestoreNotifications(ctx)
	a.Tasks.LoadCategories(ctx, u.ID)
	a.Notes.LoadNotes(ctx, u.ID)
}

// SignOut logs out and forgets the previous user's data.
func (a *App) SignOut(ctx context.Context) {
	a.Session.Logout(ctx)
	a.Tasks.Dispose()
	a.Notes.Dispose()
}

// Close disposes the services, stops the scheduler and closes the stores.
func (a *App) Close() error {
	a.Tasks.Dispose()
	a.Notes.Dispose()
	a.Preferences.Dispose()
	a.Session.Dispose()

	a.scheduler.Stop()

	if err := a.closeStores(); err != nil {
		return fmt.Errorf("close app: %w", err)
	}
	return nil
}

func (a *App) closeStores() error {
	var errs []error
	if a.kv != nil {
		errs = append(errs, a.kv.Close())
	}
	if a.gateway != nil {
		errs = append(errs, a.gateway.Close())
	}
	return errors.Join(errs...)
}
