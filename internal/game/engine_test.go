package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxsi02/russian-world-game/internal/config"
	"github.com/foxsi02/russian-world-game/internal/crime"
	"github.com/foxsi02/russian-world-game/internal/job"
	"github.com/foxsi02/russian-world-game/internal/market"
	"github.com/foxsi02/russian-world-game/internal/player"
	"github.com/foxsi02/russian-world-game/internal/role"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
)

func newEngineForTest(t *testing.T) (*Engine, *player.MemoryRepo, *FakeClock, *FakeDice) {
	t.Helper()
	ctx := context.Background()

	playerRepo := player.NewMemoryRepo()
	jobRepo := job.NewMemoryRepo()
	require.NoError(t, jobRepo.Seed(ctx, job.Defaults()))
	marketRepo := market.NewMemoryRepo()
	require.NoError(t, marketRepo.Seed(ctx, market.Defaults()))
	crimeRepo := crime.NewMemoryRepo()

	fake := NewFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	dice := &FakeDice{Floats: []float64{0.5}}

	e := &Engine{
		Players:   playerRepo,
		Jobs:      jobRepo,
		Market:    marketRepo,
		Crimes:    crimeRepo,
		Telemetry: telemetry.NewMemoryRepository(),
		Balance:   config.Default(),
		Sweeps:    config.SweepsConfig{ShortInterval: 30 * time.Second, LongInterval: 5 * time.Minute},
		Clock:     fake,
		Dice:      dice,
	}
	return e, playerRepo, fake, dice
}

func registerPlayer(t *testing.T, e *Engine, id int64, name string) player.Player {
	t.Helper()
	p, err := e.RegisterPlayer(context.Background(), id, name, "")
	require.NoError(t, err)
	return p
}

func TestRegisterPlayer_DefaultsAndConflict(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)

	p := registerPlayer(t, e, 1, "Ivan")
	assert.Equal(t, 1000, p.Balance)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, role.None, p.Role)
	assert.Equal(t, float64(100), p.Energy)
	assert.Equal(t, float64(100), p.Health)

	_, err := e.RegisterPlayer(ctx, 1, "Ivan again", "")
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestChooseRole_BonusesAndSkills(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		role    string
		balance int
		rep     int
		skill   string
	}{
		{"police", 1500, 50, "law_enforcement"},
		{"businessman", 2000, 25, "management"},
		{"politician", 1800, 75, "rhetoric"},
		{"criminal", 2500, -50, "stealth"},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			e, _, _, _ := newEngineForTest(t)
			registerPlayer(t, e, 1, "Ivan")

			res, err := e.ChooseRole(ctx, 1, tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.balance, res.Balance)
			assert.Equal(t, tc.rep, res.Reputation)
			require.Len(t, res.Skills, 4)
			assert.Contains(t, res.Skills, tc.skill)

			prof, err := e.Profile(ctx, 1)
			require.NoError(t, err)
			for _, s := range res.Skills {
				sk, ok := prof.Player.Skills[s]
				require.True(t, ok, "skill %s missing", s)
				assert.Equal(t, 1, sk.Level)
				assert.Equal(t, 0, sk.Exp)
			}
		})
	}
}

func TestChooseRole_InvalidAndTaken(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.ChooseRole(ctx, 1, "astronaut")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = e.ChooseRole(ctx, 1, "police")
	require.NoError(t, err)

	_, err = e.ChooseRole(ctx, 1, "criminal")
	assert.ErrorIs(t, err, ErrRoleTaken)

	// Rejected change leaves the player untouched.
	prof, err := e.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, role.Police, prof.Player.Role)
	assert.Equal(t, 1500, prof.Player.Balance)
}

func TestChooseRole_ChangeAllowedBonusOnce(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	e.Balance.AllowRoleChange = true
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.ChooseRole(ctx, 1, "police")
	require.NoError(t, err)

	res, err := e.ChooseRole(ctx, 1, "criminal")
	require.NoError(t, err)
	assert.Equal(t, 0, res.BonusBalance)
	assert.Equal(t, role.Criminal, res.Role)
	// Still only the police signing bonus in the balance.
	assert.Equal(t, 1500, res.Balance)
}

func TestWorkJob_Errors(t *testing.T) {
	ctx := context.Background()
	e, repo, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.WorkJob(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrJobNotFound)

	// Job 4 requires businessman.
	_, err = e.WorkJob(ctx, 1, 4)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	// Drain energy below the office job's cost.
	p, ok, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	p.Energy = 5
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	_, err = e.WorkJob(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrInsufficientEnergy)

	// Rejected work changed nothing.
	p, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000, p.Balance)
}

func TestWorkJob_SuccessAppliesEffects(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	res, err := e.WorkJob(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Salary)
	assert.Equal(t, 1100, res.Balance)
	assert.Equal(t, float64(80), res.Energy)
	assert.Equal(t, "management", res.Skill)
	assert.Equal(t, 10, res.SkillState.Exp)
	assert.False(t, res.LeveledUp)
}

func TestWorkJob_OpenJobsNeedNoRole(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	// A fresh player with no role sees the open jobs.
	jobs, err := e.AvailableJobs(ctx, 1)
	require.NoError(t, err)
	ids := make([]int, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.ElementsMatch(t, []int{1, 2}, ids)

	// And can work one of them regardless of how the catalog entry spells
	// the missing role requirement.
	_, err = e.WorkJob(ctx, 1, 2)
	assert.NoError(t, err)

	require.NoError(t, e.Jobs.Seed(ctx, []job.Job{{ID: 99, Name: "Street sweeper", Salary: 50, EnergyCost: 10, Skill: "physical"}}))
	_, err = e.WorkJob(ctx, 1, 99)
	assert.NoError(t, err)
}

func TestWorkJob_CooldownEnforced(t *testing.T) {
	ctx := context.Background()
	e, _, clock, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")
	_, err := e.ChooseRole(ctx, 1, "police")
	require.NoError(t, err)

	// Job 5 carries a 30 minute cooldown.
	_, err = e.WorkJob(ctx, 1, 5)
	require.NoError(t, err)

	_, err = e.WorkJob(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrOnCooldown)

	clock.Advance(31 * time.Minute)
	_, err = e.WorkJob(ctx, 1, 5)
	assert.NoError(t, err)
}

func TestWorkJob_CooldownDisabledByConfig(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	e.Balance.EnforceJobCooldowns = false
	registerPlayer(t, e, 1, "Ivan")
	_, err := e.ChooseRole(ctx, 1, "police")
	require.NoError(t, err)

	_, err = e.WorkJob(ctx, 1, 5)
	require.NoError(t, err)
	_, err = e.WorkJob(ctx, 1, 5)
	assert.NoError(t, err)
}

func TestWorkJob_RejectedWhileArrested(t *testing.T) {
	ctx := context.Background()
	e, repo, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	p, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	until := e.now().Add(10 * time.Minute)
	p.ArrestedUntil = &until
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	_, err = e.WorkJob(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrArrested)
}

func TestAddSkillExperience(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.AddSkillExperience(ctx, 1, "hacking", -5)
	assert.ErrorIs(t, err, ErrNegativeExperience)

	// Missing skill initializes at level 1.
	res, err := e.AddSkillExperience(ctx, 1, "hacking", 500)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 500, res.Exp)
	assert.False(t, res.LeveledUp)

	// Crossing level*1000 resets exp and bumps the level.
	res, err = e.AddSkillExperience(ctx, 1, "hacking", 500)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, 0, res.Exp)
	assert.True(t, res.LeveledUp)
}

// Full first-session walkthrough: register, go businessman, work a shift,
// then train management to level 2.
func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)

	p := registerPlayer(t, e, 7, "Oleg")
	require.Equal(t, 1000, p.Balance)

	roleRes, err := e.ChooseRole(ctx, 7, "businessman")
	require.NoError(t, err)
	assert.Equal(t, 2000, roleRes.Balance)
	assert.Equal(t, 25, roleRes.Reputation)

	workRes, err := e.WorkJob(ctx, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 2250, workRes.Balance)
	assert.Equal(t, float64(75), workRes.Energy)

	skillRes, err := e.AddSkillExperience(ctx, 7, "management", 1000)
	require.NoError(t, err)
	assert.True(t, skillRes.LeveledUp)
	assert.Equal(t, 2, skillRes.Level)
	assert.Equal(t, 0, skillRes.Exp)
}

func TestClaimDailyBonus(t *testing.T) {
	ctx := context.Background()
	e, _, clock, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	res, err := e.ClaimDailyBonus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Amount)
	assert.Equal(t, 1500, res.Balance)

	_, err = e.ClaimDailyBonus(ctx, 1)
	assert.ErrorIs(t, err, ErrBonusClaimed)

	clock.Advance(24*time.Hour + time.Minute)
	_, err = e.ClaimDailyBonus(ctx, 1)
	assert.NoError(t, err)
}

func TestBuyProperty(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.BuyProperty(ctx, 1, "nope", "apartment")
	assert.ErrorIs(t, err, ErrStoreNotFound)
	_, err = e.BuyProperty(ctx, 1, "vehicles", "tank")
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Apartment costs 5000, the player has 1000: reject, never clamp.
	_, err = e.BuyProperty(ctx, 1, "real_estate", "apartment")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	prof, err := e.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000, prof.Player.Balance)

	res, err := e.BuyProperty(ctx, 1, "vehicles", "bicycle")
	require.NoError(t, err)
	assert.Equal(t, 700, res.Balance)

	prof, err = e.Profile(ctx, 1)
	require.NoError(t, err)
	require.Len(t, prof.Player.Properties, 1)
	assert.Equal(t, "bicycle", prof.Player.Properties[0].ItemID)
}

func TestShareTrading(t *testing.T) {
	ctx := context.Background()
	e, _, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.BuyShares(ctx, 1, "METL", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = e.BuyShares(ctx, 1, "NOPE", 1)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	_, err = e.BuyShares(ctx, 1, "METL", 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	res, err := e.BuyShares(ctx, 1, "METL", 5)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Total)
	assert.Equal(t, 500, res.Balance)
	assert.Equal(t, 5, res.Held)

	_, err = e.SellShares(ctx, 1, "METL", 6)
	assert.ErrorIs(t, err, ErrInsufficientShares)

	res, err = e.SellShares(ctx, 1, "METL", 5)
	require.NoError(t, err)
	assert.Equal(t, 1000, res.Balance)
	assert.Equal(t, 0, res.Held)
}

func TestCreateCorporation(t *testing.T) {
	ctx := context.Background()
	e, repo, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	_, err := e.CreateCorporation(ctx, 1, "Vector", "tech", 10000)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	_, err = e.ChooseRole(ctx, 1, "businessman")
	require.NoError(t, err)

	_, err = e.CreateCorporation(ctx, 1, "Vector", "tech", 500)
	assert.ErrorIs(t, err, ErrCapitalTooSmall)

	_, err = e.CreateCorporation(ctx, 1, "Vector", "tech", 50000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Top up and found.
	p, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p.Balance = 20000
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	corp, err := e.CreateCorporation(ctx, 1, "Vector", "tech", 10000)
	require.NoError(t, err)
	assert.Equal(t, 1000, corp.Shares)
	assert.Equal(t, 10, corp.SharePrice)
	assert.Equal(t, 200, corp.OwnerShares)
	assert.Equal(t, int64(1), corp.OwnerID)

	stats, err := e.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Corporations)
}

func TestAddFriendAndHallOfFame(t *testing.T) {
	ctx := context.Background()
	e, repo, _, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")
	registerPlayer(t, e, 2, "Olga")

	require.ErrorIs(t, e.AddFriend(ctx, 1, 1), ErrSelfTarget)
	require.NoError(t, e.AddFriend(ctx, 1, 2))
	require.ErrorIs(t, e.AddFriend(ctx, 1, 2), ErrAlreadyFriends)

	p1, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p2, _, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, p1.HasFriend(2))
	assert.True(t, p2.HasFriend(1))

	p2.Balance = 9999
	_, err = repo.Update(ctx, p2)
	require.NoError(t, err)

	top, err := e.HallOfFame(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].ID)
}
