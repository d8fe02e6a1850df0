package config

import (
	"time"

	"github.com/hance08/bankdash/internal/constants"
)

type Config struct {
	API        APIConfig      `mapstructure:"api"`
	Session    SessionConfig  `mapstructure:"session"`
	Display    DisplayConfig  `mapstructure:"display"`
	Export     ExportConfig   `mapstructure:"export"`
	Mutation   MutationConfig `mapstructure:"mutation"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type DisplayConfig struct {
	PageSize      int    `mapstructure:"page_size"`
	RevealInitial int    `mapstructure:"reveal_initial"`
	RevealStep    int    `mapstructure:"reveal_step"`
	TimeFormat    string `mapstructure:"time_format"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

type MutationConfig struct {
	CompleteDelay time.Duration `mapstructure:"complete_delay"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func NewDefault() *Config {
	return &Config{
		API:      APIConfig{BaseURL: "http://localhost:5000/api", Timeout: constants.RequestTimeout},
		Session:  SessionConfig{Path: ""},
		Display:  DisplayConfig{PageSize: constants.PageSize, RevealInitial: constants.RevealInitial, RevealStep: constants.RevealStep, TimeFormat: constants.DisplayTime},
		Export:   ExportConfig{Dir: "", Format: "csv"},
		Mutation: MutationConfig{CompleteDelay: constants.CompleteDelay},
		Log:      LogConfig{Level: "info"},
	}
}

// Defaults returns the default values keyed the way viper stores them,
// for seeding a fresh config file.
func Defaults() map[string]any {
	d := NewDefault()
	return map[string]any{
		"api.base_url":            d.API.BaseURL,
		"api.timeout":             d.API.Timeout.String(),
		"session.path":            d.Session.Path,
		"display.page_size":       d.Display.PageSize,
		"display.reveal_initial":  d.Display.RevealInitial,
		"display.reveal_step":     d.Display.RevealStep,
		"display.time_format":     d.Display.TimeFormat,
		"export.dir":              d.Export.Dir,
		"export.format":           d.Export.Format,
		"mutation.complete_delay": d.Mutation.CompleteDelay.String(),
		"log.level":               d.Log.Level,
	}
}
