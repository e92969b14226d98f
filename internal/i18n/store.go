package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
)

// SupportedLocales enumerates storefront locales in display order.
var SupportedLocales = []string{"es", "en", "fr", "it"}

// Supported reports whether the locale is served by the storefront.
func Supported(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// Store loads locale bundles from a directory of <locale>.json files and
// caches them per locale.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]Bundle
}

// NewStore constructs a bundle store over dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, cache: make(map[string]Bundle)}
}

// Bundle returns the decoded message bundle for locale, loading it on first
// use.
func (s *Store) Bundle(locale string) (Bundle, error) {
	if !Supported(locale) {
		return nil, domainErrors.ErrUnsupportedLocale
	}

	s.mu.RLock()
	bundle, ok := s.cache[locale]
	s.mu.RUnlock()
	if ok {
		return bundle, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, locale+".json"))
	if err != nil {
		return nil, fmt.Errorf("read messages for %q: %w", locale, err)
	}

	var decoded Bundle
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode messages for %q: %w", locale, err)
	}

	s.mu.Lock()
	s.cache[locale] = decoded
	s.mu.Unlock()

	return decoded, nil
}

// Translator returns a translator bound to the locale's bundle.
func (s *Store) Translator(locale string) (*Translator, error) {
	bundle, err := s.Bundle(locale)
	if err != nil {
		return nil, err
	}
	return NewTranslator(bundle), nil
}
