package config

import "strings"

// Credential holds the process-wide API credential. The environment
// override (a shared key injected at deploy time) takes precedence over
// the user-entered key persisted in the config file; when neither is
// present the caller must prompt for setup.
type Credential struct {
	override string
	stored   string
	path     string
}

// NewCredential creates a Credential from the environment override, the
// stored config value and the config path used for persistence.
func NewCredential(override, stored, path string) *Credential {
	return &Credential{
		override: strings.TrimSpace(override),
		stored:   strings.TrimSpace(stored),
		path:     path,
	}
}

// Get resolves the credential. ok is false when no credential is
// available.
func (c *Credential) Get() (value string, ok bool) {
	if c.override != "" {
		return c.override, true
	}
	if c.stored != "" {
		return c.stored, true
	}
	return "", false
}

// Set persists a user-entered credential to the config file and updates
// the in-memory value. Only non-emptiness is validated; format hints are
// advisory.
func (c *Credential) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	cfg, err := Load(c.path)
	if err != nil {
		return err
	}
	cfg.APIKey = value
	if err := Save(cfg, c.path); err != nil {
		return err
	}
	c.stored = value
	return nil
}
