// Package prefs persists small visitor preferences, currently the preferred
// storefront language.
package prefs

import (
	"context"
	"sync"

	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/localstore"
	"github.com/noizee/storefront/pkg/logger"
)

const languageKey = "prefs.language"

// DefaultLanguage is used until the visitor picks one.
const DefaultLanguage = "en"

var supported = map[string]bool{"en": true, "fr": true}

// Service holds visitor preferences backed by the local store.
type Service struct {
	store localstore.Store
	log   *logger.Logger

	mu       sync.Mutex
	language string
}

// NewService creates the preference service with defaults in place.
func NewService(store localstore.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("prefs")
	}
	return &Service{store: store, log: log, language: DefaultLanguage}
}

// Load rehydrates preferences. Unknown stored values and store failures
// fall back to the default rather than failing.
func (s *Service) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, languageKey)
	if err != nil {
		s.log.WithError(err).Warn("reading persisted preferences failed, using defaults")
		return nil
	}
	if !ok {
		return nil
	}
	lang := string(raw)
	if !supported[lang] {
		s.log.WithField("language", lang).Warn("discarding unsupported persisted language")
		if err := s.store.Delete(ctx, languageKey); err != nil {
			s.log.WithError(err).Warn("scrubbing persisted language failed")
		}
		return nil
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return nil
}

// Language returns the active language code.
func (s *Service) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the language. The write-through failing does not
// undo the switch; it only costs persistence across restarts.
func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if !supported[lang] {
		return validation.Errorf("unsupported language %q", lang)
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	if err := s.store.Put(ctx, languageKey, []byte(lang)); err != nil {
		s.log.WithError(err).Warn("persisting language failed")
	}
	return nil
}
