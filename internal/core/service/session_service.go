package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
	"github.com/inkwell/blog-system/internal/pkg/metrics"
)

// SessionManager owns the current-user identity and mirrors it to the store
// under the token and user keys.
type SessionManager struct {
	store    ports.Store
	verifier ports.CredentialVerifier
	tokens   ports.TokenIssuer
	clock    *Clock
	log      zerolog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

func NewSessionManager(
	store ports.Store,
	verifier ports.CredentialVerifier,
	tokens ports.TokenIssuer,
	clock *Clock,
	log zerolog.Logger,
) *SessionManager {
	if tokens == nil {
		tokens = MockTokenIssuer{}
	}
	if clock == nil {
		clock = NewClock(nil)
	}
	return &SessionManager{store: store, verifier: verifier, tokens: tokens, clock: clock, log: log}
}

// Hydrate restores the session persisted by a previous run. A session is
// only restored when both keys are present and the user decodes; anything
// else leaves the manager logged out. The token is not re-verified.
func (s *SessionManager) Hydrate(ctx context.Context) error {
	token, hasToken, err := s.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}
	raw, hasUser, err := s.store.Get(ctx, ports.KeyUser)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	defer s.observe()

	if !hasToken || !hasUser {
		if hasToken != hasUser {
			s.log.Warn().Bool("token", hasToken).Bool("user", hasUser).Msg("partial session in store, starting logged out")
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().
			Err(fmt.Errorf("%w: %s: %v", domain.ErrStoreCorruption, ports.KeyUser, err)).
			Msg("discarding unreadable session")
		return nil
	}
	// null and {} decode cleanly but name nobody.
	if user.ID == "" {
		s.log.Warn().
			Err(fmt.Errorf("%w: %s: missing user id", domain.ErrStoreCorruption, ports.KeyUser)).
			Msg("discarding unreadable session")
		return nil
	}

	s.current = &domain.Session{Token: token, User: user}
	s.log.Debug().Str("user_id", user.ID).Msg("session restored")
	return nil
}

// Login checks the credentials and, on a match, opens a new session. A
// mismatch returns false without touching the current session or the store.
func (s *SessionManager) Login(ctx context.Context, email, password string) (bool, error) {
	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.log.Info().Str("email", email).Msg("login rejected")
			return false, nil
		}
		return false, fmt.Errorf("login: %w", err)
	}

	if err := s.open(ctx, *user, s.clock.Next()); err != nil {
		return false, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return true, nil
}

// Register always succeeds: it creates a new user with a time-derived id and
// replaces any existing session. The password is accepted but not kept.
func (s *SessionManager) Register(ctx context.Context, username, email, _ string) (bool, error) {
	now := s.clock.Next()
	user := domain.User{
		ID:       strconv.FormatInt(now.UnixMilli(), 10),
		Username: username,
		Email:    email,
	}

	if err := s.open(ctx, user, now); err != nil {
		return false, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	return true, nil
}

// Logout clears the session in the store, then in memory. A failed removal
// leaves the session signed in. It is safe to call when nobody is signed in.
func (s *SessionManager) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, ports.KeyToken); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.store.Remove(ctx, ports.KeyUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.current = nil
	s.observe()
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionManager) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := s.current.User
	return &u
}

func (s *SessionManager) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Token returns the bearer token of the current session, or "".
func (s *SessionManager) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authenticate resolves a bearer token presented by a client to the current
// user. Only the token of the live session is accepted.
func (s *SessionManager) Authenticate(token string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || token == "" {
		return nil, domain.ErrUnauthenticated
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.current.Token)) != 1 {
		return nil, domain.ErrUnauthenticated
	}
	if v, ok := s.tokens.(ports.TokenVerifier); ok {
		if err := v.Verify(token); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
	}

	u := s.current.User
	return &u, nil
}

// open issues a token for user, writes token and user to the store and makes
// it the current session.
func (s *SessionManager) open(ctx context.Context, user domain.User, now time.Time) error {
	token, err := s.tokens.Issue(user, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, ports.KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, ports.KeyUser, string(raw)); err != nil {
		return err
	}

	s.current = &domain.Session{Token: token, User: user}
	s.observe()
	return nil
}

// observe publishes the session gauge. Callers hold s.mu.
func (s *SessionManager) observe() {
	if s.current != nil {
		metrics.SessionActive.Set(1)
		return
	}
	metrics.SessionActive.Set(0)
}
