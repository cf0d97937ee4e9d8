// Package config loads assistant configuration from YAML with environment
// overrides and supports hot reloading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all assistant configuration.
type Config struct {
	// Core settings
	Name     string `yaml:"name"`
	Username string `yaml:"username"`

	// Language model configuration
	LLM LLMConfig `yaml:"llm"`

	// Image generation
	Image ImageConfig `yaml:"image"`

	// Realtime search
	Search SearchConfig `yaml:"search"`

	// Durable data
	Storage StorageConfig `yaml:"storage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the language model client.
type LLMConfig struct {
	Provider string `yaml:"provider"` // groq, openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// ImageConfig configures the image generation endpoint.
type ImageConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// SearchConfig configures the realtime search engine.
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"`
	Timeout    string `yaml:"timeout"`
}

// StorageConfig configures where durable state lives.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Aria",
		Username: "there",

		LLM: LLMConfig{
			Provider: "groq",
			Model:    "llama-3.3-70b-versatile",
			Timeout:  "60s",
		},

		Image: ImageConfig{
			Timeout: "90s",
		},

		Search: SearchConfig{
			MaxResults: 5,
			Timeout:    "20s",
		},

		Storage: StorageConfig{
			DataDir: "data",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file, layering a .env file (if one
// exists beside the config) and environment variables on top. A missing
// config file yields defaults.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = "groq"
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "openai"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}
	if key := os.Getenv("ARIA_LLM_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("ARIA_LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if url := os.Getenv("ARIA_LLM_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}

	if key := os.Getenv("HUGGINGFACE_API_KEY"); key != "" {
		c.Image.APIKey = key
	}
	if url := os.Getenv("ARIA_IMAGE_ENDPOINT"); url != "" {
		c.Image.Endpoint = url
	}

	if name := os.Getenv("ARIA_USERNAME"); name != "" {
		c.Username = name
	}
	if dir := os.Getenv("ARIA_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
}

// LLMTimeout returns the language model timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// ImageTimeout returns the image generation timeout as a duration.
func (c *Config) ImageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Image.Timeout)
	if err != nil {
		return 90 * time.Second
	}
	return d
}

// SearchTimeout returns the search timeout as a duration.
func (c *Config) SearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 20 * time.Second
	}
	return d
}
