package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/auth"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/logging"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
)

// Keys of the persisted session state.
const (
	TokenKey   = "user_token"
	ProfileKey = "user_data"
)

// SessionService authenticates the user and keeps the session across
// restarts: the token in the secret store, the profile in the key/value store.
type SessionService struct {
	verifier  auth.Verifier
	registrar auth.Registrar
	tokens    auth.TokenIssuer
	secrets   SecretStore
	kv        KeyValueStore
	users     UserWriter
	log       logging.Logger

	op sync.Mutex

	mu      sync.RWMutex
	user    *models.User
	loading bool
	err     error
}

type SessionDeps struct {
	Verifier  auth.Verifier
	Registrar auth.Registrar
	Tokens    auth.TokenIssuer
	Secrets   SecretStore
	KV        KeyValueStore
	Users     UserWriter
	Logger    logging.Logger
}

func NewSessionService(d SessionDeps) *SessionService {
	return &SessionService{
		verifier:  d.Verifier,
		registrar: d.Registrar,
		tokens:    d.Tokens,
		secrets:   d.Secrets,
		kv:        d.KV,
		users:     d.Users,
		log:       d.Logger.With("component", "session"),
	}
}

// Init restores a stored session, if any.
func (s *SessionService) Init(ctx context.Context) {
	s.LoadStoredAuth(ctx)
}

// Dispose forgets the in-memory session without touching persisted state.
func (s *SessionService) Dispose() {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	s.user, s.err, s.loading = nil, nil, false
	s.mu.Unlock()
}

// User returns a copy of the signed-in user, or nil.
func (s *SessionService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated is true exactly when User is non-nil.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *SessionService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *SessionService) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

func (s *SessionService) begin() {
	s.mu.Lock()
	s.loading, s.err = true, nil
	s.mu.Unlock()
}

func (s *SessionService) finish(u *models.User, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return
	}
	s.user = u
}

// Login verifies the credentials and, on success, persists and activates the
// session. Rejected credentials leave the current state untouched apart from
// the error field.
func (s *SessionService) Login(ctx context.Context, email, password string) {
	s.op.Lock()
	defer s.op.Unlock()

	s.begin()
	u, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.log.Info(ctx, "login rejected", "email", email, "error", err)
		s.finish(nil, loginError(err))
		return
	}
	if err := s.persist(ctx, u); err != nil {
		s.log.Error(ctx, "login failed", "user_id", u.ID, "error", err)
		s.finish(nil, fmt.Errorf("login failed: %w", err))
		return
	}

	s.log.Info(ctx, "logged in", "user_id", u.ID)
	s.finish(u, nil)
}

func loginError(err error) error {
	if errors.Is(err, common.ErrInvalidCredentials) {
		return err
	}
	return fmt.Errorf("login failed: %w", err)
}

// Register creates an account and signs it in. displayName may be empty.
func (s *SessionService) Register(ctx context.Context, email, password, displayName string) {
	s.op.Lock()
	defer s.op.Unlock()

	s.begin()
	u, err := s.registrar.Register(ctx, email, password, displayName)
	if err == nil {
		err = s.persist(ctx, u)
	}
	if err != nil {
		s.log.Error(ctx, "registration failed", "email", email, "error", err)
		s.finish(nil, fmt.Errorf("registration failed: %w", err))
		return
	}

	s.log.Info(ctx, "registered", "user_id", u.ID)
	s.finish(u, nil)
}

func (s *SessionService) persist(ctx context.Context, u *models.User) error {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := s.secrets.Set(ctx, TokenKey, []byte(token)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, ProfileKey, profile); err != nil {
		return err
	}
	return s.users.CreateUser(ctx, u)
}

// Logout clears the persisted session and the in-memory state. Failures to
// clear storage are logged only.
func (s *SessionService) Logout(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()
	s.logout(ctx)
}

func (s *SessionService) logout(ctx context.Context) {
	if err := s.secrets.Delete(ctx, TokenKey); err != nil {
		s.log.Warn(ctx, "failed to clear session token", "error", err)
	}
	if err := s.kv.Delete(ctx, ProfileKey); err != nil {
		s.log.Warn(ctx, "failed to clear cached profile", "error", err)
	}

	s.mu.Lock()
	s.user, s.err = nil, nil
	s.mu.Unlock()
}

// LoadStoredAuth restores the session saved by a previous Login or Register.
// When only one of the two records exists nothing is restored; when either
// is unreadable, or the token does not belong to the cached profile, the
// session is reset through Logout.
func (s *SessionService) LoadStoredAuth(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	u, err := s.readStored(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load stored session", "error", err)
		s.logout(ctx)
		return
	}
	if u == nil {
		return
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	s.log.Info(ctx, "session restored", "user_id", u.ID)
}

func (s *SessionService) readStored(ctx context.Context) (*models.User, error) {
	token, err := s.secrets.Get(ctx, TokenKey)
	if err != nil {
		return nil, err
	}
	profile, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(profile) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(profile, &u); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptSession, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: profile without id", common.ErrCorruptSession)
	}

	userID, err := s.tokens.Parse(string(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptSession, err)
	}
	if userID != u.ID {
		return nil, fmt.Errorf("%w: token belongs to another user", common.ErrCorruptSession)
	}
	return &u, nil
}
