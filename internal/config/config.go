// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves scholar-search settings from defaults, the YAML
// config file and SCHOLAR_SEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-search/pkg/types"
)

const (
	// Name is the config file base name and the directory under ~/.config.
	Name = "scholar-search"

	// EnvPrefix prefixes environment overrides, e.g. SCHOLAR_SEARCH_CLIENT_API_KEY.
	EnvPrefix = "SCHOLAR_SEARCH"
)

// SetDefaults registers every known key so that environment variables and
// Unmarshal see them even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.user_agent", "scholar-search/0.1")
	v.SetDefault("client.max_retries", 0)
	v.SetDefault("client.api_key", "")
	v.SetDefault("client.graph_base_url", "")
	v.SetDefault("client.recommendations_base_url", "")
	v.SetDefault("session.db_path", DefaultDBPath())
	v.SetDefault("session.name", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("serve.addr", "127.0.0.1:8080")
}

// BindEnv enables SCHOLAR_SEARCH_* overrides with "." mapped to "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// DefaultDBPath returns ~/.config/scholar-search/sessions.db, or a path in
// the working directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+Name, "sessions.db")
	}
	return filepath.Join(home, ".config", Name, "sessions.db")
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return types.Config{}, fmt.Errorf("invalid config %s: failed %q check", fe.Namespace(), fe.Tag())
		}
		return types.Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
