// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads journalrank settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/journalrank/ai"
	"github.com/poiesic/journalrank/search"
)

// Config holds the journalrank configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	User      string          `yaml:"user"`
	Logging   LoggingConfig   `yaml:"logging"`
	Search    SearchConfig    `yaml:"search"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	AI        AIConfig        `yaml:"ai"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	Mode    string     `yaml:"mode"`
	TopK    int        `yaml:"top_k"`
	Alpha   *float64   `yaml:"alpha"` // nil means search.DefaultAlpha
	Lexical string     `yaml:"lexical"`
	BM25    BM25Config `yaml:"bm25"`
}

// BM25Config holds the Okapi BM25 parameters.
type BM25Config struct {
	K1 float64  `yaml:"k1"`
	B  *float64 `yaml:"b"` // 0 is a valid b
}

// IngestionConfig holds import settings.
type IngestionConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// AIConfig holds answer-generation settings.
type AIConfig struct {
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	Token       string  `yaml:"token"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// Default returns a Config with every default applied.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file.
// ${VAR} and ${VAR:-default} are replaced from the environment before parsing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "journalrank.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Search.Mode == "" {
		c.Search.Mode = string(search.ModeHybrid)
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = search.DefaultTopK
	}
	if c.Search.Alpha == nil {
		alpha := search.DefaultAlpha
		c.Search.Alpha = &alpha
	}
	if c.Search.Lexical == "" {
		c.Search.Lexical = search.LexicalKeyword.String()
	}
	if c.Search.BM25.K1 <= 0 {
		c.Search.BM25.K1 = search.DefaultK1
	}
	if c.Search.BM25.B == nil {
		b := search.DefaultB
		c.Search.BM25.B = &b
	}

	defaults := ai.DefaultConfig()
	if c.AI.Host == "" {
		c.AI.Host = defaults.Host
	}
	if c.AI.Model == "" {
		c.AI.Model = defaults.Model
	}
	if c.AI.Token == "" {
		c.AI.Token = defaults.Token
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = defaults.Temperature
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = defaults.MaxTokens
	}
	if c.AI.MaxAttempts <= 0 {
		c.AI.MaxAttempts = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if _, err := search.ParseMode(c.Search.Mode); err != nil {
		return fmt.Errorf("search.mode: %w", err)
	}
	if _, err := search.ParseLexical(c.Search.Lexical); err != nil {
		return fmt.Errorf("search.lexical: %w", err)
	}
	if a := *c.Search.Alpha; a < 0 || a > 1 {
		return fmt.Errorf("search.alpha must be between 0 and 1, got %v", a)
	}
	if b := *c.Search.BM25.B; b < 0 || b > 1 {
		return fmt.Errorf("search.bm25.b must be between 0 and 1, got %v", b)
	}
	if c.Ingestion.PoolSize < 0 {
		return errors.New("ingestion.pool_size must not be negative")
	}
	if err := c.AIConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// AIConfig returns the ai section as an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithToken(c.AI.Token),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithMaxTokens(c.AI.MaxTokens),
	)
}

// SearcherOptions returns the searcher options described by the search section.
// The config must have passed Validate.
func (c *Config) SearcherOptions() []search.Option {
	lexical, _ := search.ParseLexical(c.Search.Lexical)
	return []search.Option{
		search.WithHybridLexical(lexical),
		search.WithBM25(c.Search.BM25.K1, *c.Search.BM25.B),
	}
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
