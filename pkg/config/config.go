// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package config loads tdq configuration from environment variables and an
// optional YAML config file.
// Priority: env vars > config file > defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// DefaultConfigFileName is the base name of the optional config file
// (tdq.yaml) searched in the working directory.
const DefaultConfigFileName = "tdq"

// Config holds all configuration for the tdq client.
type Config struct {
	MCP      MCPConfig       `mapstructure:"mcp"`
	LLM      LLMConfig       `mapstructure:"llm"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Datasets []DatasetConfig `mapstructure:"datasets"`
}

// MCPConfig addresses the Teradata MCP server.
type MCPConfig struct {
	// Endpoint is the JSON-RPC HTTP endpoint (env: MCP_ENDPOINT). Required.
	Endpoint string `mapstructure:"endpoint"`

	// BearerToken is an optional Authorization token (env: MCP_BEARER_TOKEN).
	BearerToken string `mapstructure:"bearer_token"`

	// HandshakeStrict aborts a run when the initialized notification fails.
	// Default is lenient: some server revisions reject the notification
	// while accepting subsequent calls.
	HandshakeStrict bool `mapstructure:"handshake_strict"`
}

// LLMConfig configures the optional OpenAI-compatible planner.
type LLMConfig struct {
	// APIKey enables LLM planning when set (env: OPENAI_API_KEY).
	APIKey string `mapstructure:"api_key"`

	// Model selects the chat model (env: OPENAI_MODEL). Default: gpt-4o-mini.
	Model string `mapstructure:"model"`

	// BaseURL overrides the API base URL for gateways and proxies
	// (env: OPENAI_BASE_URL).
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`

	// File appends logs to a file in addition to stderr (env: LOG_FILE).
	File string `mapstructure:"file"`
}

// DatasetConfig declares the checks to run for one table (tdq check).
type DatasetConfig struct {
	// Table is the qualified table name, e.g. "SALES.orders".
	Table string `mapstructure:"table"`

	NullCheck       ColumnsCheck `mapstructure:"null_check"`
	RangeCheck      RangeCheck   `mapstructure:"range_check"`
	UniquenessCheck ColumnsCheck `mapstructure:"uniqueness_check"`
}

// ColumnsCheck names the columns a check applies to.
type ColumnsCheck struct {
	Columns []string `mapstructure:"columns"`
}

// RangeCheck names the columns whose value ranges are profiled.
type RangeCheck struct {
	Columns []RangeColumn `mapstructure:"columns"`
}

// RangeColumn is one range-profiled column with optional expected bounds.
type RangeColumn struct {
	Column string   `mapstructure:"column"`
	Min    *float64 `mapstructure:"min"`
	Max    *float64 `mapstructure:"max"`
}

// Load reads configuration. path selects an explicit config file; when
// empty, tdq.yaml in the working directory is used if present. A missing
// config file is not an error; env vars alone are a valid configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigFileName)
		v.AddConfigPath(".")
	}

	bindings := map[string]string{
		"mcp.endpoint":     "MCP_ENDPOINT",
		"mcp.bearer_token": "MCP_BEARER_TOKEN",
		"llm.api_key":      "OPENAI_API_KEY",
		"llm.model":        "OPENAI_MODEL",
		"llm.base_url":     "OPENAI_BASE_URL",
		"logging.file":     "LOG_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	v.SetDefault("llm.model", "gpt-4o-mini")

	if err := v.ReadInConfig(); err != nil {
		// An explicit file must exist and parse; the implicit tdq.yaml is
		// optional but must parse when present.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.MCP.Endpoint == "" {
		return errors.New("MCP_ENDPOINT not set")
	}
	return nil
}
