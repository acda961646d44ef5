
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"content-quality-analyzer/internal/parser"
)

const (
	EnvModelPath = "QA_MODEL_PATH"
	EnvAddr      = "QA_ADDR"
	EnvLogLevel  = "QA_LOG_LEVEL"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Model   Model   `yaml:"model"`
	Fetch   Fetch   `yaml:"fetch"`
	Extract Extract `yaml:"extract"`
	Explain Explain `yaml:"explain"`
	Batch   Batch   `yaml:"batch"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type Model struct {
	Path string `yaml:"path"`
}

type Fetch struct {
	Timeout     time.Duration `yaml:"timeout"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	MaxBytes    int64         `yaml:"max_bytes"`
	UserAgent   string        `yaml:"user_agent"`
}

type Extract struct {
	Mode string `yaml:"mode"`
}

type Explain struct {
	TopK int `yaml:"top_k"`
}

type Batch struct {
	Concurrency int `yaml:"concurrency"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Model: Model{Path: "models/quality_model.json"},
		Fetch: Fetch{
			Timeout:     10 * time.Second,
			DialTimeout: 5 * time.Second,
			MaxBytes:    5 * 1024 * 1024,
		},
		Extract: Extract{Mode: parser.ModeBasic},
		Explain: Explain{TopK: 6},
		Batch:   Batch{Concurrency: 10},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModelPath); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Model.Path == "" {
		errs = append(errs, errors.New("model.path required"))
	}
	if c.Explain.TopK <= 0 {
		errs = append(errs, fmt.Errorf("explain.top_k must be positive, got %d", c.Explain.TopK))
	}
	if c.Batch.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency must be positive, got %d", c.Batch.Concurrency))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout must be positive, got %s", c.Fetch.Timeout))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_bytes must be positive, got %d", c.Fetch.MaxBytes))
	}
	if c.Extract.Mode != parser.ModeBasic && c.Extract.Mode != parser.ModeArticle {
		errs = append(errs, fmt.Errorf("extract.mode must be %q or %q, got %q", parser.ModeBasic, parser.ModeArticle, c.Extract.Mode))
	}
	return errors.Join(errs...)
}
