package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides maps process environment onto the loaded config. Only set
// variables win over file values.
type envOverrides struct {
	Difficulty string `env:"DIFFICULTY"`

	Addr     string `env:"RWG_ADDR"`
	BotToken string `env:"RWG_BOT_TOKEN"`
	BotDebug bool   `env:"RWG_BOT_DEBUG"`

	StartingBalance    int           `env:"RWG_STARTING_BALANCE"`
	ArrestDuration     time.Duration `env:"RWG_ARREST_DURATION"`
	DailyBonusAmount   int           `env:"RWG_DAILY_BONUS"`
	ShortSweepInterval time.Duration `env:"RWG_SHORT_SWEEP"`
	LongSweepInterval  time.Duration `env:"RWG_LONG_SWEEP"`

	AllowRoleChange     *bool `env:"RWG_ALLOW_ROLE_CHANGE"`
	EnforceJobCooldowns *bool `env:"RWG_ENFORCE_JOB_COOLDOWNS"`
}

// FromEnv applies environment overrides on top of cfg. DIFFICULTY swaps the
// whole balance preset before individual overrides apply.
func FromEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return err
	}

	switch o.Difficulty {
	case "casual":
		cfg.Game = Casual()
	case "hard":
		cfg.Game = Hard()
	}

	if o.Addr != "" {
		cfg.Server.Addr = o.Addr
	}
	if o.BotToken != "" {
		cfg.Bot.Token = o.BotToken
	}
	if o.BotDebug {
		cfg.Bot.Debug = true
	}
	if o.StartingBalance > 0 {
		cfg.Game.StartingBalance = o.StartingBalance
	}
	if o.ArrestDuration > 0 {
		cfg.Game.ArrestDuration = o.ArrestDuration
	}
	if o.DailyBonusAmount > 0 {
		cfg.Game.DailyBonusAmount = o.DailyBonusAmount
	}
	if o.ShortSweepInterval > 0 {
		cfg.Sweeps.ShortInterval = o.ShortSweepInterval
	}
	if o.LongSweepInterval > 0 {
		cfg.Sweeps.LongInterval = o.LongSweepInterval
	}
	if o.AllowRoleChange != nil {
		cfg.Game.AllowRoleChange = *o.AllowRoleChange
	}
	if o.EnforceJobCooldowns != nil {
		cfg.Game.EnforceJobCooldowns = *o.EnforceJobCooldowns
	}
	return nil
}
