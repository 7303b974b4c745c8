package types

import (
	"net"
	"strconv"
	"time"
)

// Config represents the subrename configuration file
type Config struct {
	DryRun   bool           `yaml:"dry_run"`
	Strict   bool           `yaml:"strict"` // Fail on video/subtitle count mismatch instead of truncating
	Language LanguageConfig `yaml:"language"`
	Remote   RemoteConfig   `yaml:"remote"`
}

// LanguageConfig controls language tagging of renamed subtitles
type LanguageConfig struct {
	Enabled   bool  `yaml:"enabled"`   // Insert a language segment into target names
	Detect    bool  `yaml:"detect"`    // Fall back to content detection
	Normalize bool  `yaml:"normalize"` // Map tags to ISO 639-1 (eng -> en, jp -> ja)
	MaxBytes  int64 `yaml:"max_bytes"` // Upper bound on bytes read for detection
}

// RemoteConfig holds SFTP connection defaults
type RemoteConfig struct {
	Host                  string        `yaml:"host"`
	Port                  int           `yaml:"port"`
	User                  string        `yaml:"user"`
	Password              string        `yaml:"password,omitempty"`
	Key                   string        `yaml:"key,omitempty"` // Private key path
	KnownHosts            string        `yaml:"known_hosts"`
	InsecureIgnoreHostKey bool          `yaml:"insecure_ignore_host_key"`
	Timeout               time.Duration `yaml:"timeout"`
	DialRetries           int           `yaml:"dial_retries"`
}

// Address returns host:port
func (r RemoteConfig) Address() string {
	port := r.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(r.Host, strconv.Itoa(port))
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	res := *c
	return &res
}
