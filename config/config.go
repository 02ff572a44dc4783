package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "config.env"
	DefaultBaseURL    = "https://openrouter.ai/api/v1"
	DefaultModel      = "meta-llama/llama-3.3-70b-instruct:free"
)

// Config holds the OpenRouter settings read from the config file and the
// process environment. Environment variables take precedence over the file.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Load reads the env-style config file at path, merges in the process
// environment and validates the result. A missing file is fine, the
// environment alone may carry the key. Validation happens here so a bad key
// is caught before any client is constructed.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("OPENROUTER_BASE_URL", DefaultBaseURL)
	v.SetDefault("DEFAULT_MODEL", DefaultModel)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	cfg := &Config{
		APIKey:  v.GetString("OPENROUTER_API_KEY"),
		BaseURL: v.GetString("OPENROUTER_BASE_URL"),
		Model:   v.GetString("DEFAULT_MODEL"),
	}

	if cfg.APIKey == "" {
		return nil, errors.Errorf("OPENROUTER_API_KEY is not set; add it to %s or export it in the environment", path)
	}

	if IsPlaceholder(cfg.APIKey) {
		return nil, errors.Errorf("OPENROUTER_API_KEY is still the placeholder %q; replace it with a real key", cfg.APIKey)
	}

	return cfg, nil
}

// IsPlaceholder reports whether key still carries the template value shipped
// in config.env.example.
func IsPlaceholder(key string) bool {
	k := strings.ToLower(key)
	return strings.HasPrefix(k, "your_") || strings.HasSuffix(k, "_here")
}
