package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"modelgrip/internal/domain"
)

// MaxFavourites is the size cap of the persisted preset list
const MaxFavourites = 8

// Config represents the application configuration
type Config struct {
	Version       int            `toml:"version"`
	Model         ModelSettings  `toml:"model"`
	UI            UISettings     `toml:"ui"`
	AllowedModels []string       `toml:"allowed_models,omitempty"`
	Favourites    []FavouriteRaw `toml:"favourites,omitempty"`
}

// ModelSettings holds the last active selection
type ModelSettings struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	Thinking string `toml:"thinking,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Window int `toml:"window,omitempty"` // visible pick-list rows, 0 = default
}

// FavouriteRaw is a favourite as persisted; it may be malformed and is
// validated during ValidFavourites().
type FavouriteRaw struct {
	Key      string `toml:"key"`
	Label    string `toml:"label,omitempty"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	Thinking string `toml:"thinking,omitempty"`
}

// ValidFavourites validates the persisted presets. Malformed entries (key
// not a single character, missing provider or model, unknown thinking
// level) are dropped, and entries beyond MaxFavourites are truncated;
// neither is a load failure.
func (c *Config) ValidFavourites() []domain.Favourite {
	var out []domain.Favourite
	for _, raw := range c.Favourites {
		fav, ok := validateFavourite(raw)
		if !ok {
			log.Printf("config: dropping malformed favourite %+v", raw)
			continue
		}
		out = append(out, fav)
		if len(out) == MaxFavourites {
			break
		}
	}
	return out
}

func validateFavourite(raw FavouriteRaw) (domain.Favourite, bool) {
	if len([]rune(raw.Key)) != 1 {
		return domain.Favourite{}, false
	}
	if raw.Provider == "" || raw.Model == "" {
		return domain.Favourite{}, false
	}
	fav := domain.Favourite{
		Key:      raw.Key,
		Label:    raw.Label,
		Provider: raw.Provider,
		Model:    raw.Model,
	}
	if fav.Label == "" {
		fav.Label = raw.Provider + "/" + raw.Model
	}
	if raw.Thinking != "" {
		lvl, ok := domain.ParseThinkingLevel(raw.Thinking)
		if !ok {
			return domain.Favourite{}, false
		}
		fav.Thinking = lvl
	}
	return fav, true
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	Path() string
}

type service struct {
	filePath string
}

// NewService creates a config service rooted at the user config directory
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return NewServiceAt(filepath.Join(configDir, "modelgrip", "config.toml"))
}

// NewServiceAt creates a config service for an explicit path
func NewServiceAt(path string) Service {
	return &service{filePath: path}
}

func (s *service) Path() string { return s.filePath }

// Load reads the configuration, falling back to defaults when the file does
// not exist.
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to file
func (s *service) Save(config *Config) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
	}
}
