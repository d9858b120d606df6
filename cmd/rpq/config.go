package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/rpq/solver"
)

const envPrefix = "RPQ"

// Flag and config keys.
const (
	keyTimeLimit   = "time-limit"
	keyNodeLimit   = "node-limit"
	keyEngines     = "engines"
	keyEncoding    = "encoding"
	keySeeding     = "seeding"
	keyEscalations = "escalations"
	keyMetricsAddr = "metrics-addr"
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
)

const (
	engineLinear      = "linear-integer"
	enginePropagation = "constraint-propagation"
)

type config struct {
	TimeLimit   time.Duration
	NodeLimit   int
	Engines     []string
	Encoding    solver.Encoding
	Seeding     bool
	Escalations int
	MetricsAddr string
	LogLevel    slog.Level
	LogFormat   string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		TimeLimit:   v.GetDuration(keyTimeLimit),
		NodeLimit:   v.GetInt(keyNodeLimit),
		Seeding:     v.GetBool(keySeeding),
		Escalations: v.GetInt(keyEscalations),
		MetricsAddr: v.GetString(keyMetricsAddr),
		LogFormat:   v.GetString(keyLogFormat),
	}

	// Env values arrive space separated, flag values comma separated.
	for _, raw := range v.GetStringSlice(keyEngines) {
		for _, e := range strings.Split(raw, ",") {
			e = strings.TrimSpace(e)
			switch e {
			case engineLinear, enginePropagation:
				cfg.Engines = append(cfg.Engines, e)
			case "":
			default:
				return config{}, fmt.Errorf("unknown engine %q", e)
			}
		}
	}
	if len(cfg.Engines) == 0 {
		return config{}, fmt.Errorf("no engines selected")
	}

	enc, ok := solver.ParseEncoding(v.GetString(keyEncoding))
	if !ok {
		return config{}, fmt.Errorf("unknown encoding %q", v.GetString(keyEncoding))
	}
	cfg.Encoding = enc

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return config{}, fmt.Errorf("log level: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	if cfg.TimeLimit < 0 || cfg.NodeLimit < 0 {
		return config{}, fmt.Errorf("limits must not be negative")
	}
	if cfg.Escalations < 1 {
		cfg.Escalations = 1
	}

	return cfg, nil
}

func newLogger(cfg config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
