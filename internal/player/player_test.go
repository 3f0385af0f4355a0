package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := New(42, "Ivan", "ivan42", now)

	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, DefaultBalance, p.Balance)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, float64(100), p.Energy)
	assert.Equal(t, float64(100), p.Health)
	assert.Empty(t, p.Skills)
}

func TestClampVitals(t *testing.T) {
	p := Player{Energy: 150, Health: -20}
	p.ClampVitals()
	assert.Equal(t, float64(100), p.Energy)
	assert.Equal(t, float64(0), p.Health)
}

func TestRecoverVitals(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := Player{Energy: 40, Health: 90, VitalsAt: start}

	p.RecoverVitals(start.Add(10*time.Minute), 1.0, 0.2)
	assert.InDelta(t, 50, p.Energy, 1e-9)
	assert.InDelta(t, 92, p.Health, 1e-9)
	assert.Equal(t, start.Add(10*time.Minute), p.VitalsAt)

	// Time running backwards is ignored.
	p.RecoverVitals(start, 1.0, 0.2)
	assert.InDelta(t, 50, p.Energy, 1e-9)

	// Long idle clamps at the cap.
	p.RecoverVitals(start.Add(48*time.Hour), 1.0, 0.2)
	assert.Equal(t, float64(100), p.Energy)
	assert.Equal(t, float64(100), p.Health)
}

func TestHealthStatus(t *testing.T) {
	assert.Equal(t, "healthy", Player{Health: 100}.HealthStatus())
	assert.Equal(t, "healthy", Player{Health: 70}.HealthStatus())
	assert.Equal(t, "injured", Player{Health: 69}.HealthStatus())
	assert.Equal(t, "critical", Player{Health: 29}.HealthStatus())
}

func TestArrestLifecycle(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(30 * time.Minute)
	p := Player{ArrestedUntil: &until}

	assert.True(t, p.Arrested(now))
	assert.True(t, p.Arrested(until.Add(-time.Second)))
	assert.False(t, p.Arrested(until))

	assert.False(t, p.ReleaseIfExpired(now))
	require.NotNil(t, p.ArrestedUntil)

	assert.True(t, p.ReleaseIfExpired(until))
	assert.Nil(t, p.ArrestedUntil)
}

func TestAddSkillExp(t *testing.T) {
	p := Player{}

	s, leveled := p.AddSkillExp("stealth", 400)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 400, s.Exp)
	assert.False(t, leveled)

	s, leveled = p.AddSkillExp("stealth", 600)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0, s.Exp)
	assert.True(t, leveled)

	// Level 2 threshold is 2000; exp always stays below it.
	s, leveled = p.AddSkillExp("stealth", 1999)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 1999, s.Exp)
	assert.False(t, leveled)
	assert.Less(t, s.Exp, SkillThreshold(s.Level))
}

func TestAddSkillExp_OverflowDiscardedOnLevelUp(t *testing.T) {
	p := Player{}

	// Exp resets to zero on level-up; overflow does not carry.
	s, leveled := p.AddSkillExp("hacking", 3000)
	assert.True(t, leveled)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0, s.Exp)
}

func TestSeedSkills_NeverResets(t *testing.T) {
	p := Player{}
	p.AddSkillExp("law_enforcement", 500)

	p.SeedSkills([]string{"law_enforcement", "firearms"})
	assert.Equal(t, 500, p.Skills["law_enforcement"].Exp)
	assert.Equal(t, 1, p.Skills["firearms"].Level)
}
