package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"precal/core/metrics"
	"precal/infra/broadcast"
)

type Config struct {
	Server    ServerConfig     `json:"server"`
	Fleet     FleetConfig      `json:"fleet"`
	Metrics   metrics.Config   `json:"metrics"`
	Broadcast broadcast.Config `json:"broadcast"`
}

// ServerConfig defines settings for the HTTP API server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	// A missing file is not an error: the built-in fleet and defaults apply.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PRECAL_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "precal_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Fleet.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Broadcast.SetDefaults()
	if err := cfg.Fleet.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Broadcast.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
