// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides loading and validation of the dlsearch
// configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// Name is the path of the configuration file relative to the XDG
// configuration directories.
const Name = "dlsearch/config.toml"

// Config is the dlsearch configuration.
type Config struct {
	// Paths are additional library search directories.
	// Relative paths are relative to the executable's
	// directory.
	Paths []string `json:"paths,omitempty" toml:"paths"`
	// Extension is the library file extension.
	Extension *string `json:"extension,omitempty" toml:"extension"`

	LogLevel  *string `json:"log_level,omitempty" toml:"log_level"`
	AddSource *bool   `json:"log_add_source,omitempty" toml:"log_add_source"`
}

// Schema is the CUE schema for a valid configuration.
const Schema = `
{
	paths?:          [... string & !=""]
	extension?:      =~"^\\.[^/\\\\]+$"
	log_level?:      _#log_level
	log_add_source?: bool
}

_#log_level: =~"(?i)^(?:debug|info|warn|error)$"
`

// Load reads and validates the TOML configuration at path. Unknown keys
// are an error.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	_, err = Validate(Schema, &cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Level returns the configured log level. If no level is configured
// Level returns false.
func (c *Config) Level() (slog.Level, bool, error) {
	if c == nil || c.LogLevel == nil {
		return 0, false, nil
	}
	var l slog.Level
	err := l.UnmarshalText([]byte(*c.LogLevel))
	if err != nil {
		return 0, false, errors.Join(fmt.Errorf("invalid log level: %q", *c.LogLevel), err)
	}
	return l, true, nil
}
