// Package config loads and saves the client configuration, including the
// locally persisted API credential.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lawbot"
)

// Config is the on-disk configuration.
type Config struct {
	// APIKey is the user-entered credential. An environment override
	// takes precedence at resolution time; see Credential.
	APIKey string `yaml:"api_key"`
	// Model overrides the provider's default model ID.
	Model string `yaml:"model"`
	// Persona is the expert mode selected at startup.
	Persona string `yaml:"persona"`
}

// DefaultPersona returns the configured persona, falling back to general
// for empty or unknown values.
func (c Config) DefaultPersona() lawbot.Persona {
	p := lawbot.Persona(c.Persona)
	for _, known := range lawbot.Personas {
		if p == known {
			return p
		}
	}
	return lawbot.PersonaGeneral
}

// DefaultPath returns the config file location under the user config
// directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "lawbot", "config.yml")
}

// Load reads the config at path. A missing file yields a zero config.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories. The file
// holds a credential, so permissions are owner-only.
func Save(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
