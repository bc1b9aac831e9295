package types

import "time"

// HTTPConfig holds shared HTTP settings for calls to Semantic Scholar.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is how many times keyword, paper and recommendation calls
	// retry HTTP 429. Zero disables retries. Bulk search never retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"min=0,max=10"`
}

// ClientConfig holds settings for the Semantic Scholar client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is an optional key for higher rate limits, sent as x-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// GraphBaseURL overrides the Graph API base (tests and proxies).
	GraphBaseURL string `json:"graph_base_url,omitempty" yaml:"graph_base_url,omitempty" mapstructure:"graph_base_url"`

	// RecommendationsBaseURL overrides the Recommendations API base.
	RecommendationsBaseURL string `json:"recommendations_base_url,omitempty" yaml:"recommendations_base_url,omitempty" mapstructure:"recommendations_base_url"`
}

// SessionConfig locates the session store.
type SessionConfig struct {
	// DBPath is the SQLite database holding session snapshots.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path" validate:"required"`

	// Name selects the CLI session (default "default").
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Pretty switches from JSON lines to human-readable console output.
	Pretty bool `json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// ServeConfig holds settings for the HTTP front end.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`
}

// Config groups all settings.
type Config struct {
	Client  ClientConfig  `json:"client" yaml:"client" mapstructure:"client"`
	Session SessionConfig `json:"session" yaml:"session" mapstructure:"session"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Serve   ServeConfig   `json:"serve" yaml:"serve" mapstructure:"serve"`
}
