package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Bot     BotConfig    `yaml:"bot" json:"bot"`
	Game    Balance      `yaml:"game" json:"game"`
	Sweeps  SweepsConfig `yaml:"sweeps" json:"sweeps"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type BotConfig struct {
	// Token is usually injected via RWG_BOT_TOKEN rather than the file.
	// The bot is disabled when empty.
	Token string `yaml:"token" json:"-"`
	Debug bool   `yaml:"debug" json:"debug"`
}

type SweepsConfig struct {
	ShortInterval time.Duration `yaml:"short_interval" json:"short_interval"`
	LongInterval  time.Duration `yaml:"long_interval" json:"long_interval"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Sweeps.ShortInterval == 0 {
		c.Sweeps.ShortInterval = 30 * time.Second
	}
	if c.Sweeps.LongInterval == 0 {
		c.Sweeps.LongInterval = 5 * time.Minute
	}
	if c.Game.IsZero() {
		c.Game = Default()
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
