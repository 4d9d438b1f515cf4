package service

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/handhistory/internal/platform"
)

// Config represents the complete parser service configuration
type Config struct {
	Parser    ParserSettings  `hcl:"parser,block"`
	Histories []HistoryConfig `hcl:"history,block"`
}

// ParserSettings contains service-level configuration
type ParserSettings struct {
	PlayerUsername     string  `hcl:"player_username,optional"`
	StrictValidation   bool    `hcl:"strict_validation,optional"`
	ErrorRateThreshold float64 `hcl:"error_rate_threshold,optional"`
	LogLevel           string  `hcl:"log_level,optional"`
}

// HistoryConfig points at a platform's hand history directories
type HistoryConfig struct {
	Platform string   `hcl:"platform,label"`
	Paths    []string `hcl:"paths"`
	Recurse  bool     `hcl:"recurse,optional"`
}

// DefaultConfig returns default service configuration
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserSettings{
			ErrorRateThreshold: 0.5,
			LogLevel:           "info",
		},
	}
}

// LoadConfig loads service configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	hclParser := hclparse.NewParser()
	file, diags := hclParser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Parser.ErrorRateThreshold == 0 {
		config.Parser.ErrorRateThreshold = 0.5
	}
	if config.Parser.LogLevel == "" {
		config.Parser.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the service configuration
func (c *Config) Validate() error {
	if c.Parser.ErrorRateThreshold < 0 || c.Parser.ErrorRateThreshold > 1 {
		return fmt.Errorf("error rate threshold %.2f must be within [0,1]", c.Parser.ErrorRateThreshold)
	}

	for _, h := range c.Histories {
		if !platform.IsSupported(platform.Platform(h.Platform)) {
			return fmt.Errorf("history block %q: unsupported platform", h.Platform)
		}
		if len(h.Paths) == 0 {
			return fmt.Errorf("history block %q: at least one path required", h.Platform)
		}
	}

	return nil
}
