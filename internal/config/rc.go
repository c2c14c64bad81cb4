package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Credentials is one host entry in the rc file.
type Credentials struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// RC is the user-level credentials file (~/.lingorc). It maps
// hostnames, scheme included, to the account used against them.
type RC struct {
	Hosts map[string]Credentials `mapstructure:"hosts" yaml:"hosts"`
}

// DefaultRCPath returns the rc location in the user's home directory.
func DefaultRCPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".lingorc"), nil
}

// LoadRC reads the rc file at path. A missing file is not an error:
// it loads as an empty RC so anonymous use keeps working.
func LoadRC(path string) (*RC, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// The rc has no recognized extension, so the format is pinned.
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &RC{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rc RC
	if err := v.Unmarshal(&rc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &rc, nil
}

// Credentials returns the account for hostname. The LINGO_USERNAME and
// LINGO_PASSWORD environment variables override the file for every
// host. ok reports whether a username was found at all; hostname
// lookup is case-insensitive because the loader lowercases keys.
func (rc *RC) Credentials(hostname string) (username, password string, ok bool) {
	if rc != nil {
		entry := rc.Hosts[strings.ToLower(strings.TrimSpace(hostname))]
		username, password = entry.Username, entry.Password
	}
	if env := os.Getenv("LINGO_USERNAME"); env != "" {
		username = env
	}
	if env := os.Getenv("LINGO_PASSWORD"); env != "" {
		password = env
	}
	return username, password, username != ""
}

// SetCredentials records the account for hostname, replacing any
// previous entry.
func (rc *RC) SetCredentials(hostname, username, password string) {
	if rc.Hosts == nil {
		rc.Hosts = map[string]Credentials{}
	}
	rc.Hosts[strings.ToLower(strings.TrimSpace(hostname))] = Credentials{
		Username: username,
		Password: password,
	}
}

// SaveRC writes the rc file. Credentials are private to the user, so
// the file goes to mode 0600 even when it already existed wider.
func SaveRC(path string, rc *RC) error {
	return writeLocked(path, rc, 0o600)
}
