// Package config defines the runtime configuration surface the multi-window
// core reads: fonts, padding, tab bar geometry, and the shell to launch.
// Loading is treated as an external collaborator per spec §1 ("command-line
// parsing, config file loading and hot-reload notifications ... are
// external collaborators"); this package provides a concrete, minimal
// implementation so the rest of the tree has something real to depend on.
package config

import (
	"encoding/json"
	"os"
)

// Config is the subset of terminal configuration the core consults
// directly. Font rasterization and color themes beyond these basics stay
// with the external Display/Renderer collaborator.
type Config struct {
	Shell string `json:"shell"`

	FontSize       float64 `json:"font_size"`
	CellWidth      float64 `json:"cell_width"`
	CellHeight     float64 `json:"cell_height"`
	PaddingX       int     `json:"padding_x"`
	PaddingY       int     `json:"padding_y"`
	DynamicPadding bool    `json:"dynamic_padding"`

	TabBarHeight int `json:"tab_bar_height"`

	MessageBarBackground string `json:"message_bar_background"`

	// ClickTimeoutMs is loaded from the config file but nothing reads it:
	// internal/termproc's selection state machine uses its own fixed
	// 500ms clickTimeout.
	ClickTimeoutMs int `json:"click_timeout_ms"`
}

// Default returns the built-in configuration used when no config file is
// present, or as the base that Load merges a file's overrides onto.
func Default() *Config {
	return &Config{
		Shell:                defaultShell(),
		FontSize:             12.0,
		CellWidth:            9.0,
		CellHeight:           18.0,
		PaddingX:             2,
		PaddingY:             2,
		DynamicPadding:       true,
		TabBarHeight:         28,
		MessageBarBackground: "#fcc21b",
		ClickTimeoutMs:       500,
	}
}

func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// rawOverride mirrors Config with pointer fields so Load can tell "absent
// from the file" apart from "explicitly zero".
type rawOverride struct {
	Shell                *string  `json:"shell"`
	FontSize             *float64 `json:"font_size"`
	CellWidth            *float64 `json:"cell_width"`
	CellHeight           *float64 `json:"cell_height"`
	PaddingX             *int     `json:"padding_x"`
	PaddingY             *int     `json:"padding_y"`
	DynamicPadding       *bool    `json:"dynamic_padding"`
	TabBarHeight         *int     `json:"tab_bar_height"`
	MessageBarBackground *string  `json:"message_bar_background"`
	ClickTimeoutMs       *int     `json:"click_timeout_ms"`
}

// Load reads path and merges it onto Default(). A missing file is not an
// error: it simply yields the defaults, matching the teacher's
// partial-override JSON merge idiom (internal/config/user_settings.go in
// the source tree this was adapted from).
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	var raw rawOverride
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	applyOverride(cfg, &raw)
	return cfg, nil
}

func applyOverride(cfg *Config, raw *rawOverride) {
	if raw.Shell != nil {
		cfg.Shell = *raw.Shell
	}
	if raw.FontSize != nil {
		cfg.FontSize = *raw.FontSize
	}
	if raw.CellWidth != nil {
		cfg.CellWidth = *raw.CellWidth
	}
	if raw.CellHeight != nil {
		cfg.CellHeight = *raw.CellHeight
	}
	if raw.PaddingX != nil {
		cfg.PaddingX = *raw.PaddingX
	}
	if raw.PaddingY != nil {
		cfg.PaddingY = *raw.PaddingY
	}
	if raw.DynamicPadding != nil {
		cfg.DynamicPadding = *raw.DynamicPadding
	}
	if raw.TabBarHeight != nil {
		cfg.TabBarHeight = *raw.TabBarHeight
	}
	if raw.MessageBarBackground != nil {
		cfg.MessageBarBackground = *raw.MessageBarBackground
	}
	if raw.ClickTimeoutMs != nil {
		cfg.ClickTimeoutMs = *raw.ClickTimeoutMs
	}
}

// Clone returns a deep copy, used when merging a reload onto a config a
// window is currently holding a pointer to (spec §5: "reload swaps the
// whole config atomically under a short lock").
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
