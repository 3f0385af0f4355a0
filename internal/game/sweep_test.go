package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortSweep_VitalsRecovery(t *testing.T) {
	ctx := context.Background()
	e, repo, clock, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	p, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p.Energy = 50
	p.Health = 60
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	// 10 minutes at 1.0 energy/min and 0.2 health/min.
	clock.Advance(10 * time.Minute)
	res, err := e.ShortSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.PlayersTouched)

	p, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 60, p.Energy, 1e-9)
	assert.InDelta(t, 62, p.Health, 1e-9)

	// Recovery clamps at 100 and never overshoots.
	clock.Advance(24 * time.Hour)
	_, err = e.ShortSweep(ctx)
	require.NoError(t, err)
	p, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(100), p.Energy)
	assert.Equal(t, float64(100), p.Health)
}

func TestShortSweep_ReleasesExpiredArrests(t *testing.T) {
	ctx := context.Background()
	e, repo, clock, _ := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	until := clock.Now().Add(30 * time.Minute)
	p, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p.ArrestedUntil = &until
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	// Before the term: nothing released.
	clock.Advance(29 * time.Minute)
	res, err := e.ShortSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ArrestsExpired)

	clock.Advance(2 * time.Minute)
	res, err = e.ShortSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ArrestsExpired)

	p, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p.ArrestedUntil)
}

func TestShortSweep_ExpiresOldInteractions(t *testing.T) {
	ctx := context.Background()
	e, _, clock, dice := newEngineForTest(t)
	setupArrestPair(t, e)
	dice.Floats = []float64{0.0}

	_, err := e.Arrest(ctx, 1, 2, 5)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour) // past the 24h interaction TTL
	res, err := e.ShortSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.InteractionsExpired)

	recs, err := e.Crimes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	// Expiry only drops the records; the world counters stay cumulative.
	stats, err := e.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Arrests)
}

func TestLongSweep_MarketWalkAndFloor(t *testing.T) {
	ctx := context.Background()
	e, _, _, dice := newEngineForTest(t)

	// Swing band is ±10%, so Intn(21) scripted at 20 means +10%.
	dice.Ints = []int{20}
	res, err := e.LongSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 110, res.Prices["METL"])
	assert.Equal(t, 165, res.Prices["TECH"])
	assert.Equal(t, 132, res.Prices["OILG"])

	// A -10% walk on a price at the floor stays at the floor.
	_, err = e.Market.SetPrice(ctx, "METL", e.Balance.MarketMinPrice, e.now())
	require.NoError(t, err)
	dice.Ints = []int{0}
	res, err = e.LongSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, e.Balance.MarketMinPrice, res.Prices["METL"])
}

func TestLongSweep_PaysPropertyIncome(t *testing.T) {
	ctx := context.Background()
	e, repo, _, dice := newEngineForTest(t)
	registerPlayer(t, e, 1, "Ivan")

	p, _, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	p.Balance = 10000
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)

	_, err = e.BuyProperty(ctx, 1, "real_estate", "apartment")
	require.NoError(t, err)

	dice.Ints = []int{10} // 0% walk, keep prices still
	res, err := e.LongSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, res.IncomePaid)
	assert.Equal(t, 1, res.PlayersPaid)

	p, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5050, p.Balance)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	e, _, _, _ := newEngineForTest(t)
	e.Sweeps.ShortInterval = 5 * time.Millisecond
	e.Sweeps.LongInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
