// Package config loads quizgen settings. Values are layered: built-in
// defaults, then the YAML config file, then environment variables. Command
// line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/store"
)

// Config is the full application configuration.
type Config struct {
	LLM  llm.Config     `yaml:"llm"`
	Quiz quizgen.Config `yaml:"quiz"`

	// DataPath is the quiz document location. Empty means the default.
	DataPath string `yaml:"data_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DefaultQuestions is the question count when none is given.
	DefaultQuestions int `yaml:"default_questions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:              llm.DefaultConfig(),
		Quiz:             quizgen.DefaultConfig(),
		LogLevel:         "warn",
		DefaultQuestions: quizgen.DefaultQuestions,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/quizgen/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "quizgen", "config.yaml"), nil
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path means DefaultPath. A missing file is not an
// error when path was not given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.mergeFile(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		} else {
			return cfg, err
		}
	}

	cfg.ApplyEnv()
	cfg.LLM.FillFromStandardEnv()

	if cfg.DataPath == "" {
		p, err := store.DefaultDataPath()
		if err != nil {
			return cfg, err
		}
		cfg.DataPath = p
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays QUIZGEN_* environment variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()

	if v := os.Getenv("QUIZGEN_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("QUIZGEN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("QUIZGEN_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultQuestions = n
		}
	}
	if v := os.Getenv("QUIZGEN_STRICT_TOPIC_CHECK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Quiz.StrictTopicCheck = b
		}
	}
	if v := os.Getenv("QUIZGEN_STRUCTURED_TOPIC_CHECK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Quiz.StructuredTopicCheck = b
		}
	}
}

// Validate checks values that do not depend on the model provider. A
// missing API key is reported later, when a provider is built.
func (c Config) Validate() error {
	if err := quizgen.CheckCount(c.DefaultQuestions); err != nil {
		return fmt.Errorf("default_questions: %w", err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Quiz.Temperature < 0 || c.Quiz.Temperature > 2 {
		return fmt.Errorf("quiz.temperature: %v out of range [0, 2]", c.Quiz.Temperature)
	}
	return nil
}
