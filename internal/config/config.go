// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete enrollhelper configuration.
type Config struct {
	// Reference table location
	Catalog CatalogConfig `toml:"catalog"`

	// Recon command and privilege escalation
	Command CommandConfig `toml:"command"`

	// Groups maps a department name to a fixed department group, replacing
	// the derived COS-<NAME> token for that department.
	Groups map[string]string `toml:"groups"`

	// Operator-facing text
	UI UIConfig `toml:"ui"`

	// Logging
	Log LogConfig `toml:"log"`
}

// CatalogConfig locates the building/department reference table.
type CatalogConfig struct {
	// Path is the reference table file. Empty uses the bundled table.
	Path string `toml:"path"`
}

// CommandConfig describes the recon command and how it is escalated.
type CommandConfig struct {
	// Executable is the absolute path of the device-management tool.
	Executable string `toml:"executable"`
	// Subcommand is the inventory subcommand passed first.
	Subcommand string `toml:"subcommand"`
	// Shell interprets the wrapped command line.
	Shell string `toml:"shell"`
	// Wrapper is the escalation prefix; it must read the password from stdin.
	Wrapper []string `toml:"wrapper"`
	// BuildingPrefix is prepended to the selected building.
	BuildingPrefix string `toml:"building_prefix"`
	// GroupPrefix is prepended to derived department groups.
	GroupPrefix string `toml:"group_prefix"`
	// OtherGroup is sent when the catch-all department is selected.
	OtherGroup string `toml:"other_group"`
	// MaxOutputBytes caps the captured command output.
	MaxOutputBytes int `toml:"max_output_bytes"`
}

// UIConfig contains operator-facing text and display options.
type UIConfig struct {
	Title              string `toml:"title"`
	AcknowledgeMessage string `toml:"acknowledge_message"`
	SubmittingNotice   string `toml:"submitting_notice"`
	// AltScreen runs the TUI in the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
	// File receives log records. Empty means no log file.
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultTitle              = "College of Sciences"
	DefaultAcknowledgeMessage = "This process is a mandatory step for the computer to function correctly."
	DefaultSubmittingNotice   = `Please ensure that you click "Allow" on any pop-up notifications associated with "jamf" or "terminal".`
)

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		Command: CommandConfig{
			Executable:     "/usr/local/bin/jamf",
			Subcommand:     "recon",
			Wrapper:        []string{"sudo", "-S", "-p", ""},
			BuildingPrefix: "NCSU-",
			GroupPrefix:    "COS-",
			OtherGroup:     "COS-Other",
			MaxOutputBytes: 100000,
		},
		Groups: map[string]string{},
		UI: UIConfig{
			Title:              DefaultTitle,
			AcknowledgeMessage: DefaultAcknowledgeMessage,
			SubmittingNotice:   DefaultSubmittingNotice,
			AltScreen:          true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load returns the defaults when path is empty, otherwise LoadFromPath(path).
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads a TOML file over the defaults, then validates it.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills empty fields with the stock values.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Command.Executable == "" {
		c.Command.Executable = defaults.Command.Executable
	}
	if c.Command.Subcommand == "" {
		c.Command.Subcommand = defaults.Command.Subcommand
	}
	if len(c.Command.Wrapper) == 0 {
		c.Command.Wrapper = defaults.Command.Wrapper
	}
	if c.Command.OtherGroup == "" {
		c.Command.OtherGroup = defaults.Command.OtherGroup
	}
	if c.Command.MaxOutputBytes == 0 {
		c.Command.MaxOutputBytes = defaults.Command.MaxOutputBytes
	}
	if c.Groups == nil {
		c.Groups = map[string]string{}
	}

	if c.UI.Title == "" {
		c.UI.Title = defaults.UI.Title
	}
	if c.UI.AcknowledgeMessage == "" {
		c.UI.AcknowledgeMessage = defaults.UI.AcknowledgeMessage
	}
	if c.UI.SubmittingNotice == "" {
		c.UI.SubmittingNotice = defaults.UI.SubmittingNotice
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !filepath.IsAbs(c.Command.Executable) {
		errs = append(errs, ValidationError{
			Field:   "command.executable",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Command.Executable),
		})
	}
	if c.Command.Shell != "" && !filepath.IsAbs(c.Command.Shell) {
		errs = append(errs, ValidationError{
			Field:   "command.shell",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Command.Shell),
		})
	}
	if len(c.Command.Wrapper) == 0 || strings.TrimSpace(c.Command.Wrapper[0]) == "" {
		errs = append(errs, ValidationError{
			Field:   "command.wrapper",
			Message: "must name an escalation program",
		})
	}
	if c.Command.MaxOutputBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "command.max_output_bytes",
			Message: "must not be negative",
		})
	}

	for dept, group := range c.Groups {
		if strings.TrimSpace(group) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("groups.%q", dept),
				Message: "group must not be empty",
			})
		}
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
