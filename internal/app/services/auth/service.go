// Package auth manages the admin session: login, logout, persistence across
// restarts and the bearer token attached to backend requests. The session
// has exactly two states, anonymous and authenticated admin; a login that
// yields a token without the administrator flag is rejected outright.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/localstore"
	"github.com/noizee/storefront/pkg/logger"
)

// storageKey is the local store key holding the serialized session.
const storageKey = "session"

// ErrNotAdmin is returned when credentials authenticate a non-administrator
// account. The session stays anonymous.
var ErrNotAdmin = errors.New("auth: account is not an administrator")

// Purger is anything that must be emptied on logout so the next session
// cannot observe this session's data.
type Purger interface {
	Clear()
}

// Service holds the current session.
type Service struct {
	backend storage.Authenticator
	store   localstore.Store
	purgers []Purger
	log     *logger.Logger

	mu      sync.Mutex
	current session.Session
}

// NewService creates an anonymous session service. Purgers are emptied on
// every logout.
func NewService(backend storage.Authenticator, store localstore.Store, log *logger.Logger, purgers ...Purger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{backend: backend, store: store, purgers: purgers, log: log}
}

// Load rehydrates the session from the local store. Anything short of a
// valid admin session, including an unreadable store, a corrupt payload or
// a stored session missing the admin flag, resolves to anonymous; store
// problems are logged, never surfaced.
func (s *Service) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, storageKey)
	if err != nil {
		s.log.WithError(err).Warn("reading persisted session failed, staying anonymous")
		return nil
	}
	if !ok {
		return nil
	}

	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil || !sess.Valid() {
		if err != nil {
			s.log.WithError(err).Warn("discarding unreadable persisted session")
		} else {
			s.log.Warn("discarding persisted session without admin grant")
		}
		s.scrub(ctx)
		return nil
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.log.WithField("user_id", sess.UserID).Info("session restored")
	return nil
}

// Login authenticates against the backend. On success the session is
// persisted so it survives restarts. Credentials that resolve to a
// non-administrator account return ErrNotAdmin. Any failed login drops
// whatever session was active and scrubs the persisted copy, so the
// service always lands on anonymous.
func (s *Service) Login(ctx context.Context, identifier, password string) (session.Session, error) {
	if identifier == "" || password == "" {
		return session.Session{}, validation.Errorf("identifier and password are required")
	}

	sess, err := s.backend.Login(ctx, identifier, password)
	if err != nil {
		s.log.WithError(err).Warn("login failed")
		s.invalidate(ctx)
		return session.Session{}, err
	}
	if !sess.Valid() {
		s.log.WithField("user_id", sess.UserID).Warn("login rejected: not an administrator")
		s.invalidate(ctx)
		return session.Session{}, ErrNotAdmin
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if raw, err := json.Marshal(sess); err != nil {
		s.log.WithError(err).Warn("serializing session failed")
	} else if err := s.store.Put(ctx, storageKey, raw); err != nil {
		s.log.WithError(err).Warn("persisting session failed")
	}
	s.log.WithField("user_id", sess.UserID).Info("admin logged in")
	return sess, nil
}

// Logout drops the session, scrubs the persisted copy and purges every
// registered cache. Logging out while anonymous is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	wasAuthenticated := s.current.Valid()
	userID := s.current.UserID
	s.current = session.Session{}
	s.mu.Unlock()

	if !wasAuthenticated {
		return nil
	}
	for _, p := range s.purgers {
		p.Clear()
	}
	s.scrub(ctx)
	s.log.WithField("user_id", userID).Info("admin logged out")
	return nil
}

// invalidate resets to anonymous and scrubs the persisted session.
func (s *Service) invalidate(ctx context.Context) {
	s.mu.Lock()
	s.current = session.Session{}
	s.mu.Unlock()
	s.scrub(ctx)
}

func (s *Service) scrub(ctx context.Context) {
	if err := s.store.Delete(ctx, storageKey); err != nil {
		s.log.WithError(err).Warn("scrubbing persisted session failed")
	}
}

// Current returns the session snapshot.
func (s *Service) Current() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// State returns the state machine position.
func (s *Service) State() session.State {
	return s.Current().State()
}

// IsAuthenticated reports whether an admin is logged in.
func (s *Service) IsAuthenticated() bool {
	return s.Current().Valid()
}

// Token returns the current bearer token, empty when anonymous. Service
// satisfies the GraphQL client's token source with this method.
func (s *Service) Token() string {
	return s.Current().Token
}
