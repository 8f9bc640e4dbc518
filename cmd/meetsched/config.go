package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/meetsched/internal/api"
	"github.com/nikmy/meetsched/internal/policy"
	"github.com/nikmy/meetsched/internal/repo"
	"github.com/nikmy/meetsched/internal/telegram"
	"github.com/nikmy/meetsched/pkg/environment"
	"github.com/nikmy/meetsched/pkg/errors"
)

const defaultAddr = ":8080"

type Config struct {
	Environment environment.Env `yaml:"Environment"`

	// Timezone is the IANA zone all wall-clock times are read in, time.Local if empty.
	Timezone string `yaml:"Timezone"`

	HTTP     api.Config      `yaml:"HTTP"`
	Policy   policy.Config   `yaml:"Policy"`
	Telegram telegram.Config `yaml:"Telegram"`
	Mongo    repo.Config     `yaml:"Mongo"`
}

func loadConfig(path string, env environment.Env) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", path)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if env != environment.Unknown {
		cfg.Environment = env
	}

	if cfg.HTTP.HTTP.Addr == "" {
		cfg.HTTP.HTTP.Addr = defaultAddr
	}

	return &cfg, nil
}
