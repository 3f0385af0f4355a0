package game

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foxsi02/russian-world-game/internal/telemetry"
)

// Run drives the background sweeps until ctx is cancelled. Nothing starts
// in constructors; the caller owns the lifecycle.
func (e *Engine) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t := time.NewTicker(e.Sweeps.ShortInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				_, _ = e.ShortSweep(ctx)
			}
		}
	})

	g.Go(func() error {
		t := time.NewTicker(e.Sweeps.LongInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				_, _ = e.LongSweep(ctx)
			}
		}
	})

	return g.Wait()
}

type SweepResult struct {
	PlayersTouched      int `json:"players_touched"`
	ArrestsExpired      int `json:"arrests_expired"`
	InteractionsExpired int `json:"interactions_expired"`
}

// ShortSweep applies passive vitals recovery and releases expired arrests
// across all players, then drops stale interaction records.
func (e *Engine) ShortSweep(ctx context.Context) (SweepResult, error) {
	players, err := e.Players.List(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	now := e.now()
	res := SweepResult{}
	for _, p := range players {
		before := p
		p.RecoverVitals(now, e.Balance.EnergyRecoveryPerMin, e.Balance.HealthRecoveryPerMin)
		released := p.ReleaseIfExpired(now)
		if !released && before.Energy == p.Energy && before.Health == p.Health {
			continue
		}
		if _, err := e.Players.Update(ctx, p); err != nil {
			return res, err
		}
		res.PlayersTouched++
		if released {
			res.ArrestsExpired++
			e.record(telemetry.EventArrestExpired, telemetry.EventMetadata{"player_id": p.ID})
		}
	}

	expired, err := e.Crimes.ExpireBefore(ctx, now.Add(-e.Balance.InteractionTTL))
	if err != nil {
		return res, err
	}
	res.InteractionsExpired = expired

	e.record(telemetry.EventSweepCompleted, telemetry.EventMetadata{
		"players": res.PlayersTouched, "arrests_expired": res.ArrestsExpired,
	})
	return res, nil
}

type MarketTickResult struct {
	Prices      map[string]int `json:"prices"`
	IncomePaid  int            `json:"income_paid"`
	PlayersPaid int            `json:"players_paid"`
}

// LongSweep walks stock prices and pays out property income.
func (e *Engine) LongSweep(ctx context.Context) (MarketTickResult, error) {
	now := e.now()
	res := MarketTickResult{Prices: map[string]int{}}

	companies, err := e.Market.ListCompanies(ctx)
	if err != nil {
		return res, err
	}
	for _, c := range companies {
		price := e.walkPrice(c.Price)
		updated, err := e.Market.SetPrice(ctx, c.Symbol, price, now)
		if err != nil {
			return res, err
		}
		res.Prices[c.Symbol] = updated.Price
	}

	players, err := e.Players.List(ctx)
	if err != nil {
		return res, err
	}
	for _, p := range players {
		income := 0
		for _, pr := range p.Properties {
			income += pr.Income
		}
		if income == 0 {
			continue
		}
		p.Balance += income
		if _, err := e.Players.Update(ctx, p); err != nil {
			return res, err
		}
		res.IncomePaid += income
		res.PlayersPaid++
	}

	e.record(telemetry.EventMarketTick, telemetry.EventMetadata{
		"prices": res.Prices, "income_paid": res.IncomePaid,
	})
	return res, nil
}

// walkPrice moves a quote by up to ±MarketMaxSwingPct, floored at the
// minimum price.
func (e *Engine) walkPrice(price int) int {
	swing := e.Balance.MarketMaxSwingPct
	if swing <= 0 {
		return price
	}
	// Intn over the full band, shifted to [-swing, +swing].
	pct := e.Dice.Intn(2*swing+1) - swing
	next := price + price*pct/100
	if next < e.Balance.MarketMinPrice {
		next = e.Balance.MarketMinPrice
	}
	return next
}
