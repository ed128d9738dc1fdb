package catalog

import (
	"fmt"
	"os"

	"modelgrip/internal/domain"
)

// Switcher reads and applies the active model selection. Apply calls fail
// without changing state when the provider has no usable credential.
type Switcher interface {
	Current() domain.Selection
	SetModel(provider, model string) error
	SetThinking(level domain.ThinkingLevel) error
}

// CredentialCheck reports whether a provider can be used
type CredentialCheck func(provider string) bool

// EnvCredentialCheck checks the provider's credential environment variable
// from the catalog. Providers without a declared variable are usable.
func EnvCredentialCheck(c Catalog) CredentialCheck {
	return func(provider string) bool {
		env := c.CredentialEnv(provider)
		if env == "" {
			return true
		}
		v, ok := os.LookupEnv(env)
		return ok && v != ""
	}
}

type switcher struct {
	selection  domain.Selection
	hasCredFor CredentialCheck
}

// NewSwitcher creates a switcher with an initial selection
func NewSwitcher(initial domain.Selection, check CredentialCheck) Switcher {
	if check == nil {
		check = func(string) bool { return true }
	}
	return &switcher{selection: initial, hasCredFor: check}
}

func (s *switcher) Current() domain.Selection {
	return s.selection
}

func (s *switcher) SetModel(provider, model string) error {
	if !s.hasCredFor(provider) {
		return fmt.Errorf("%w: %s", ErrNoCredential, provider)
	}
	s.selection.Provider = provider
	s.selection.Model = model
	return nil
}

func (s *switcher) SetThinking(level domain.ThinkingLevel) error {
	s.selection.Thinking = level
	return nil
}
