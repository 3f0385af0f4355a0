package config

import "time"

// Balance holds gameplay balance configuration
type Balance struct {
	// Player defaults
	StartingBalance int `yaml:"starting_balance" json:"starting_balance"`

	// Passive vitals recovery, units per minute
	EnergyRecoveryPerMin float64 `yaml:"energy_recovery_per_min" json:"energy_recovery_per_min"`
	HealthRecoveryPerMin float64 `yaml:"health_recovery_per_min" json:"health_recovery_per_min"`

	// Arrests
	ArrestDuration       time.Duration `yaml:"arrest_duration" json:"arrest_duration"`
	ArrestBaseChance     float64       `yaml:"arrest_base_chance" json:"arrest_base_chance"`
	ArrestPerEvidence    float64       `yaml:"arrest_per_evidence" json:"arrest_per_evidence"`
	ArrestPerWanted      float64       `yaml:"arrest_per_wanted" json:"arrest_per_wanted"`
	ArrestMinChance      float64       `yaml:"arrest_min_chance" json:"arrest_min_chance"`
	ArrestMaxChance      float64       `yaml:"arrest_max_chance" json:"arrest_max_chance"`
	ArrestReward         int           `yaml:"arrest_reward" json:"arrest_reward"`
	ArrestReputation     int           `yaml:"arrest_reputation" json:"arrest_reputation"`
	ArrestFailReputation int           `yaml:"arrest_fail_reputation" json:"arrest_fail_reputation"`

	// Robberies
	RobberyBaseChance     float64 `yaml:"robbery_base_chance" json:"robbery_base_chance"`
	RobberyPerStealth     float64 `yaml:"robbery_per_stealth" json:"robbery_per_stealth"`
	RobberyMinChance      float64 `yaml:"robbery_min_chance" json:"robbery_min_chance"`
	RobberyMaxChance      float64 `yaml:"robbery_max_chance" json:"robbery_max_chance"`
	RobberyCutPct         int     `yaml:"robbery_cut_pct" json:"robbery_cut_pct"`
	RobberyCap            int     `yaml:"robbery_cap" json:"robbery_cap"`
	RobberyFailReputation int     `yaml:"robbery_fail_reputation" json:"robbery_fail_reputation"`

	// Interaction log retention
	InteractionTTL time.Duration `yaml:"interaction_ttl" json:"interaction_ttl"`

	// Daily bonus
	DailyBonusAmount   int           `yaml:"daily_bonus_amount" json:"daily_bonus_amount"`
	DailyBonusCooldown time.Duration `yaml:"daily_bonus_cooldown" json:"daily_bonus_cooldown"`

	// Stock market random walk
	MarketMaxSwingPct int `yaml:"market_max_swing_pct" json:"market_max_swing_pct"`
	MarketMinPrice    int `yaml:"market_min_price" json:"market_min_price"`

	// Corporations
	MinCorporationCapital int `yaml:"min_corporation_capital" json:"min_corporation_capital"`

	// Rule toggles
	AllowRoleChange     bool `yaml:"allow_role_change" json:"allow_role_change"`
	EnforceJobCooldowns bool `yaml:"enforce_job_cooldowns" json:"enforce_job_cooldowns"`
}

// IsZero reports whether the balance was left entirely unset.
func (b Balance) IsZero() bool {
	return b == Balance{}
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		StartingBalance:       1000,
		EnergyRecoveryPerMin:  1.0,
		HealthRecoveryPerMin:  0.2,
		ArrestDuration:        30 * time.Minute,
		ArrestBaseChance:      0.30,
		ArrestPerEvidence:     0.10,
		ArrestPerWanted:       0.05,
		ArrestMinChance:       0.05,
		ArrestMaxChance:       0.95,
		ArrestReward:          300,
		ArrestReputation:      10,
		ArrestFailReputation:  5,
		RobberyBaseChance:     0.25,
		RobberyPerStealth:     0.05,
		RobberyMinChance:      0.05,
		RobberyMaxChance:      0.90,
		RobberyCutPct:         20,
		RobberyCap:            1000,
		RobberyFailReputation: 10,
		InteractionTTL:        24 * time.Hour,
		DailyBonusAmount:      500,
		DailyBonusCooldown:    24 * time.Hour,
		MarketMaxSwingPct:     10,
		MarketMinPrice:        10,
		MinCorporationCapital: 10000,
		AllowRoleChange:       false,
		EnforceJobCooldowns:   true,
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.StartingBalance = 2000
	cfg.EnergyRecoveryPerMin = 2.0
	cfg.ArrestDuration = 15 * time.Minute
	cfg.RobberyCap = 500
	cfg.DailyBonusAmount = 1000
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.StartingBalance = 500
	cfg.EnergyRecoveryPerMin = 0.5
	cfg.HealthRecoveryPerMin = 0.1
	cfg.ArrestDuration = time.Hour
	cfg.ArrestMaxChance = 0.99
	cfg.RobberyCap = 2000
	cfg.DailyBonusAmount = 250
	return cfg
}
