package player

import (
	"time"

	"github.com/foxsi02/russian-world-game/internal/role"
)

const (
	VitalMax = 100
	VitalMin = 0

	// Exp needed for the next skill level is level * ExpPerLevel.
	ExpPerLevel = 1000

	DefaultBalance = 1000
)

// Skill tracks one trainable skill. Exp stays strictly below
// Level*ExpPerLevel; crossing the threshold bumps Level and resets Exp.
type Skill struct {
	Level int `json:"level"`
	Exp   int `json:"exp"`
}

type Player struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Username   string           `json:"username,omitempty"`
	Balance    int              `json:"balance"`
	Level      int              `json:"level"`
	Experience int              `json:"experience"`
	Reputation int              `json:"reputation"`
	Role       role.Role        `json:"role"`
	Energy     float64          `json:"energy"`
	Health     float64          `json:"health"`
	Skills     map[string]Skill `json:"skills"`

	Wanted        int        `json:"wanted"`
	ArrestedUntil *time.Time `json:"arrested_until,omitempty"`

	Properties []Property     `json:"properties,omitempty"`
	Shares     map[string]int `json:"shares,omitempty"`
	Friends    []int64        `json:"friends,omitempty"`

	LastBonusAt  *time.Time        `json:"last_bonus_at,omitempty"`
	LastWorkedAt map[int]time.Time `json:"last_worked_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	VitalsAt     time.Time         `json:"vitals_at"`
}

// Property is an item bought from one of the stores.
type Property struct {
	StoreID  string    `json:"store_id"`
	ItemID   string    `json:"item_id"`
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	Income   int       `json:"income,omitempty"`
	BoughtAt time.Time `json:"bought_at"`
}

func New(id int64, name, username string, now time.Time) Player {
	return Player{
		ID:           id,
		Name:         name,
		Username:     username,
		Balance:      DefaultBalance,
		Level:        1,
		Role:         role.None,
		Energy:       VitalMax,
		Health:       VitalMax,
		Skills:       map[string]Skill{},
		Shares:       map[string]int{},
		LastWorkedAt: map[int]time.Time{},
		CreatedAt:    now,
		VitalsAt:     now,
	}
}

// ClampVitals forces energy and health back into [0,100].
func (p *Player) ClampVitals() {
	p.Energy = clamp(p.Energy)
	p.Health = clamp(p.Health)
}

func clamp(v float64) float64 {
	if v < VitalMin {
		return VitalMin
	}
	if v > VitalMax {
		return VitalMax
	}
	return v
}

// RecoverVitals advances passive recovery from VitalsAt up to now.
// Rates are per minute. Safe to call repeatedly; it is a no-op when no
// time has passed.
func (p *Player) RecoverVitals(now time.Time, energyPerMin, healthPerMin float64) {
	if !now.After(p.VitalsAt) {
		return
	}
	minutes := now.Sub(p.VitalsAt).Minutes()
	p.Energy += minutes * energyPerMin
	p.Health += minutes * healthPerMin
	p.ClampVitals()
	p.VitalsAt = now
}

// HealthStatus mirrors the in-game condition labels shown to players.
func (p Player) HealthStatus() string {
	switch {
	case p.Health < 30:
		return "critical"
	case p.Health < 70:
		return "injured"
	default:
		return "healthy"
	}
}

// Arrested reports whether the player is locked up at the given instant.
func (p Player) Arrested(now time.Time) bool {
	return p.ArrestedUntil != nil && now.Before(*p.ArrestedUntil)
}

// ReleaseIfExpired clears an arrest whose term has passed. Returns true
// when a release happened.
func (p *Player) ReleaseIfExpired(now time.Time) bool {
	if p.ArrestedUntil == nil || now.Before(*p.ArrestedUntil) {
		return false
	}
	p.ArrestedUntil = nil
	return true
}

// SkillThreshold is the exp needed to finish the given skill level.
func SkillThreshold(level int) int {
	return level * ExpPerLevel
}

// AddSkillExp adds exp to a skill, initializing it at level 1 when missing,
// and applies level-ups until exp is below the threshold again.
func (p *Player) AddSkillExp(skillID string, exp int) (Skill, bool) {
	if p.Skills == nil {
		p.Skills = map[string]Skill{}
	}
	s, ok := p.Skills[skillID]
	if !ok {
		s = Skill{Level: 1}
	}
	s.Exp += exp

	leveled := false
	for s.Exp >= SkillThreshold(s.Level) {
		s.Exp = 0
		s.Level++
		leveled = true
	}

	p.Skills[skillID] = s
	return s, leveled
}

// SkillLevel returns the current level of a skill, 0 when untrained.
func (p Player) SkillLevel(skillID string) int {
	return p.Skills[skillID].Level
}

// SeedSkills ensures each named skill exists at level 1. Existing progress
// is never reset.
func (p *Player) SeedSkills(ids []string) {
	if p.Skills == nil {
		p.Skills = map[string]Skill{}
	}
	for _, id := range ids {
		if _, ok := p.Skills[id]; !ok {
			p.Skills[id] = Skill{Level: 1}
		}
	}
}

// HasFriend reports mutual-friend membership.
func (p Player) HasFriend(id int64) bool {
	for _, f := range p.Friends {
		if f == id {
			return true
		}
	}
	return false
}
