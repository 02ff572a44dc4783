package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func clearEnv(t *testing.T) {
	t.Helper()

	// Empty values count as unset for viper.
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENROUTER_BASE_URL", "")
	t.Setenv("DEFAULT_MODEL", "")
}

func TestLoadValid(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "OPENROUTER_API_KEY=sk-or-v1-abc123\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "sk-or-v1-abc123" {
		t.Errorf("unexpected key: %s", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("unexpected model: %s", cfg.Model)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, strings.Join([]string{
		"OPENROUTER_API_KEY=sk-or-v1-abc123",
		"OPENROUTER_BASE_URL=https://llm.internal/v1",
		"DEFAULT_MODEL=qwen/qwen-2.5-72b-instruct",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://llm.internal/v1" {
		t.Errorf("unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Model != "qwen/qwen-2.5-72b-instruct" {
		t.Errorf("unexpected model: %s", cfg.Model)
	}
}

func TestLoadEnvPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-from-env")

	path := writeConfig(t, "OPENROUTER_API_KEY=sk-or-v1-from-file\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "sk-or-v1-from-env" {
		t.Errorf("environment should win over the file, got %s", cfg.APIKey)
	}
}

func TestLoadMissingKey(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no key at all",
			content: "DEFAULT_MODEL=some/model\n",
		},
		{
			name:    "placeholder from example file",
			content: "OPENROUTER_API_KEY=your_openrouter_api_key_here\n",
		},
		{
			name:    "placeholder prefix",
			content: "OPENROUTER_API_KEY=your_key\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)

			path := writeConfig(t, test.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
				t.Errorf("error should name the key: %s", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.env"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "sk-or-v1-env-only" {
		t.Errorf("unexpected key: %s", cfg.APIKey)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{
			name:     "example value",
			key:      "your_openrouter_api_key_here",
			expected: true,
		},
		{
			name:     "suffix only",
			key:      "api_key_here",
			expected: true,
		},
		{
			name:     "real key",
			key:      "sk-or-v1-abc123",
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsPlaceholder(test.key); got != test.expected {
				t.Errorf("IsPlaceholder(%q) = %v", test.key, got)
			}
		})
	}
}
