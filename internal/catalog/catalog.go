package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"modelgrip/internal/domain"
)

// Failure conditions reported to the notification sink by flows
var (
	ErrNoProviders   = errors.New("no providers available")
	ErrNoModels      = errors.New("no models for provider")
	ErrModelNotFound = errors.New("model not found")
	ErrNoCredential  = errors.New("no credential configured for provider")
)

// Catalog exposes the provider/model registry, already narrowed by the
// allow-list.
type Catalog interface {
	ListAvailable() []domain.Model
	Providers() []string
	ModelsFor(provider string) []domain.Model
	Resolve(provider, id string) (domain.Model, error)
	CredentialEnv(provider string) string
}

type providerSpec struct {
	Name          string      `yaml:"name"`
	CredentialEnv string      `yaml:"credential_env"`
	Models        []modelSpec `yaml:"models"`
}

type modelSpec struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Reasoning bool     `yaml:"reasoning"`
	Input     []string `yaml:"input"`
}

type catalogFile struct {
	Providers []providerSpec `yaml:"providers"`
}

type catalog struct {
	models        []domain.Model
	credentialEnv map[string]string
}

// Load reads a YAML catalog file and applies the allow-list. Structurally
// malformed catalog data is an error to the caller, not a notification.
func Load(path string, allow *AllowList) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data, allow)
}

// Parse builds a catalog from raw YAML
func Parse(data []byte, allow *AllowList) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &catalog{credentialEnv: make(map[string]string)}
	for _, p := range file.Providers {
		if p.Name == "" {
			return nil, fmt.Errorf("catalog: provider with empty name")
		}
		c.credentialEnv[p.Name] = p.CredentialEnv
		for _, m := range p.Models {
			if m.ID == "" {
				return nil, fmt.Errorf("catalog: provider %q has a model with empty id", p.Name)
			}
			model := domain.Model{
				Provider:  p.Name,
				ID:        m.ID,
				Name:      m.Name,
				Reasoning: m.Reasoning,
				Input:     m.Input,
			}
			if model.Name == "" {
				model.Name = m.ID
			}
			if allow == nil || allow.Match(model.Ref()) {
				c.models = append(c.models, model)
			}
		}
	}
	return c, nil
}

// NewStatic builds a catalog from already-constructed models, mainly for
// tests and embedding hosts.
func NewStatic(models []domain.Model, allow *AllowList) Catalog {
	c := &catalog{credentialEnv: make(map[string]string)}
	for _, m := range models {
		if allow == nil || allow.Match(m.Ref()) {
			c.models = append(c.models, m)
		}
	}
	return c
}

func (c *catalog) ListAvailable() []domain.Model {
	out := make([]domain.Model, len(c.models))
	copy(out, c.models)
	return out
}

func (c *catalog) Providers() []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range c.models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			out = append(out, m.Provider)
		}
	}
	return out
}

func (c *catalog) ModelsFor(provider string) []domain.Model {
	var out []domain.Model
	for _, m := range c.models {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}

func (c *catalog) Resolve(provider, id string) (domain.Model, error) {
	for _, m := range c.models {
		if m.Provider == provider && m.ID == id {
			return m, nil
		}
	}
	return domain.Model{}, fmt.Errorf("%w: %s/%s", ErrModelNotFound, provider, id)
}

func (c *catalog) CredentialEnv(provider string) string {
	return c.credentialEnv[provider]
}
