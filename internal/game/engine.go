package game

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/foxsi02/russian-world-game/internal/config"
	"github.com/foxsi02/russian-world-game/internal/crime"
	"github.com/foxsi02/russian-world-game/internal/job"
	"github.com/foxsi02/russian-world-game/internal/market"
	"github.com/foxsi02/russian-world-game/internal/player"
	"github.com/foxsi02/russian-world-game/internal/profession"
	"github.com/foxsi02/russian-world-game/internal/property"
	"github.com/foxsi02/russian-world-game/internal/role"
	"github.com/foxsi02/russian-world-game/internal/telemetry"
)

// Engine owns every state transition of the game. Repositories are
// injected so tests can run fully in memory with a fake clock and dice.
type Engine struct {
	Players   player.Repository
	Jobs      job.Repository
	Market    *market.MemoryRepo
	Crimes    *crime.MemoryRepo
	Telemetry telemetry.Repository
	Balance   config.Balance
	Sweeps    config.SweepsConfig
	Clock     Clock
	Dice      Dice
}

// Player experience needed to finish a level.
const expPerPlayerLevel = 100

func (e *Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e *Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.Telemetry != nil {
		_ = e.Telemetry.RecordEvent(t, md)
	}
}

// loadPlayer fetches a player and applies the lazy refreshes that mirror
// the short sweep: passive vitals recovery and arrest expiry. The refreshed
// state is persisted so timers are never load-bearing.
func (e *Engine) loadPlayer(ctx context.Context, id int64) (player.Player, error) {
	p, ok, err := e.Players.Get(ctx, id)
	if err != nil {
		return player.Player{}, err
	}
	if !ok {
		return player.Player{}, ErrPlayerNotFound
	}

	now := e.now()
	before := p
	p.RecoverVitals(now, e.Balance.EnergyRecoveryPerMin, e.Balance.HealthRecoveryPerMin)
	released := p.ReleaseIfExpired(now)

	if released || before.Energy != p.Energy || before.Health != p.Health {
		if p, err = e.Players.Update(ctx, p); err != nil {
			return player.Player{}, err
		}
		if released {
			e.record(telemetry.EventArrestExpired, telemetry.EventMetadata{"player_id": p.ID})
		}
	}
	return p, nil
}

func (e *Engine) RegisterPlayer(ctx context.Context, id int64, name, username string) (player.Player, error) {
	if _, ok, err := e.Players.Get(ctx, id); err != nil {
		return player.Player{}, err
	} else if ok {
		return player.Player{}, ErrPlayerExists
	}

	p := player.New(id, name, username, e.now())
	p.Balance = e.Balance.StartingBalance

	created, err := e.Players.Create(ctx, p)
	if err != nil {
		return player.Player{}, err
	}
	e.record(telemetry.EventPlayerRegistered, telemetry.EventMetadata{"player_id": id, "name": name})
	return created, nil
}

type ProfileResult struct {
	Player       player.Player       `json:"player"`
	HealthStatus string              `json:"health_status"`
	Arrested     bool                `json:"arrested"`
	Professions  []profession.Status `json:"professions,omitempty"`
}

func (e *Engine) Profile(ctx context.Context, id int64) (ProfileResult, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return ProfileResult{}, err
	}
	return ProfileResult{
		Player:       p,
		HealthStatus: p.HealthStatus(),
		Arrested:     p.Arrested(e.now()),
		Professions:  profession.Evaluate(p),
	}, nil
}

type ChooseRoleResult struct {
	Role            role.Role `json:"role"`
	BonusBalance    int       `json:"bonus_balance"`
	BonusReputation int       `json:"bonus_reputation"`
	Balance         int       `json:"balance"`
	Reputation      int       `json:"reputation"`
	Skills          []string  `json:"skills"`
}

func (e *Engine) ChooseRole(ctx context.Context, id int64, roleName string) (ChooseRoleResult, error) {
	r, err := role.Parse(roleName)
	if err != nil {
		return ChooseRoleResult{}, ErrInvalidRole
	}

	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return ChooseRoleResult{}, err
	}
	if p.Role != role.None && !e.Balance.AllowRoleChange {
		return ChooseRoleResult{}, ErrRoleTaken
	}

	// The signing bonus is a once-per-player grant, even when role changes
	// are enabled.
	var bonus role.Bonus
	if p.Role == role.None {
		bonus = role.BonusFor(r)
		p.Balance += bonus.Balance
		p.Reputation += bonus.Reputation
	}
	p.Role = r
	skills := role.StartingSkills(r)
	p.SeedSkills(skills)

	if _, err := e.Players.Update(ctx, p); err != nil {
		return ChooseRoleResult{}, err
	}
	e.record(telemetry.EventRoleChosen, telemetry.EventMetadata{"player_id": id, "role": string(r)})

	return ChooseRoleResult{
		Role:            r,
		BonusBalance:    bonus.Balance,
		BonusReputation: bonus.Reputation,
		Balance:         p.Balance,
		Reputation:      p.Reputation,
		Skills:          skills,
	}, nil
}

func (e *Engine) AvailableJobs(ctx context.Context, id int64) ([]job.Job, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := e.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	return job.Available(all, p.Role), nil
}

type WorkResult struct {
	Job        job.Job      `json:"job"`
	Salary     int          `json:"salary"`
	Balance    int          `json:"balance"`
	Energy     float64      `json:"energy"`
	Skill      string       `json:"skill"`
	SkillState player.Skill `json:"skill_state"`
	LeveledUp  bool         `json:"leveled_up"`
}

func (e *Engine) WorkJob(ctx context.Context, id int64, jobID int) (WorkResult, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return WorkResult{}, err
	}

	now := e.now()
	if p.Arrested(now) {
		return WorkResult{}, ErrArrested
	}

	j, ok, err := e.Jobs.Get(ctx, jobID)
	if err != nil {
		return WorkResult{}, err
	}
	if !ok {
		return WorkResult{}, ErrJobNotFound
	}
	if !j.OpenTo(p.Role) {
		return WorkResult{}, ErrRoleMismatch
	}
	if p.Energy < j.EnergyCost {
		return WorkResult{}, ErrInsufficientEnergy
	}
	if e.Balance.EnforceJobCooldowns && j.Cooldown > 0 {
		if last, ok := p.LastWorkedAt[j.ID]; ok && now.Sub(last) < j.Cooldown {
			return WorkResult{}, ErrOnCooldown
		}
	}

	p.Balance += j.Salary
	p.Energy -= j.EnergyCost
	p.ClampVitals()
	if p.LastWorkedAt == nil {
		p.LastWorkedAt = map[int]time.Time{}
	}
	p.LastWorkedAt[j.ID] = now

	p.Experience += job.WorkExpGain
	for p.Experience >= p.Level*expPerPlayerLevel {
		p.Experience = 0
		p.Level++
	}

	skillState, leveled := p.AddSkillExp(j.Skill, job.WorkExpGain)

	if _, err := e.Players.Update(ctx, p); err != nil {
		return WorkResult{}, err
	}

	e.record(telemetry.EventJobWorked, telemetry.EventMetadata{
		"player_id": id, "job_id": jobID, "salary": j.Salary,
	})
	if leveled {
		e.record(telemetry.EventSkillLevelUp, telemetry.EventMetadata{
			"player_id": id, "skill": j.Skill, "level": skillState.Level,
		})
	}

	return WorkResult{
		Job:        j,
		Salary:     j.Salary,
		Balance:    p.Balance,
		Energy:     p.Energy,
		Skill:      j.Skill,
		SkillState: skillState,
		LeveledUp:  leveled,
	}, nil
}

type SkillResult struct {
	Skill     string `json:"skill"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`
	LeveledUp bool   `json:"leveled_up"`
}

func (e *Engine) AddSkillExperience(ctx context.Context, id int64, skillID string, exp int) (SkillResult, error) {
	if exp < 0 {
		return SkillResult{}, ErrNegativeExperience
	}

	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return SkillResult{}, err
	}

	s, leveled := p.AddSkillExp(skillID, exp)
	if _, err := e.Players.Update(ctx, p); err != nil {
		return SkillResult{}, err
	}
	if leveled {
		e.record(telemetry.EventSkillLevelUp, telemetry.EventMetadata{
			"player_id": id, "skill": skillID, "level": s.Level,
		})
	}
	return SkillResult{Skill: skillID, Level: s.Level, Exp: s.Exp, LeveledUp: leveled}, nil
}

type BonusResult struct {
	Amount  int `json:"amount"`
	Balance int `json:"balance"`
}

func (e *Engine) ClaimDailyBonus(ctx context.Context, id int64) (BonusResult, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return BonusResult{}, err
	}

	now := e.now()
	if p.LastBonusAt != nil && now.Sub(*p.LastBonusAt) < e.Balance.DailyBonusCooldown {
		return BonusResult{}, ErrBonusClaimed
	}

	p.Balance += e.Balance.DailyBonusAmount
	p.LastBonusAt = &now
	if _, err := e.Players.Update(ctx, p); err != nil {
		return BonusResult{}, err
	}
	e.record(telemetry.EventDailyBonusClaimed, telemetry.EventMetadata{
		"player_id": id, "amount": e.Balance.DailyBonusAmount,
	})
	return BonusResult{Amount: e.Balance.DailyBonusAmount, Balance: p.Balance}, nil
}

type PurchaseResult struct {
	Item    property.Item `json:"item"`
	Balance int           `json:"balance"`
}

func (e *Engine) BuyProperty(ctx context.Context, id int64, storeID, itemID string) (PurchaseResult, error) {
	st, it, ok := property.Find(storeID, itemID)
	if !ok {
		if st.ID == "" {
			return PurchaseResult{}, ErrStoreNotFound
		}
		return PurchaseResult{}, ErrItemNotFound
	}

	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return PurchaseResult{}, err
	}
	if p.Balance < it.Price {
		return PurchaseResult{}, ErrInsufficientFunds
	}

	p.Balance -= it.Price
	p.Properties = append(p.Properties, player.Property{
		StoreID:  st.ID,
		ItemID:   it.ID,
		Name:     it.Name,
		Price:    it.Price,
		Income:   it.Income,
		BoughtAt: e.now(),
	})
	if _, err := e.Players.Update(ctx, p); err != nil {
		return PurchaseResult{}, err
	}
	e.record(telemetry.EventPropertyBought, telemetry.EventMetadata{
		"player_id": id, "store": storeID, "item": itemID, "price": it.Price,
	})
	return PurchaseResult{Item: it, Balance: p.Balance}, nil
}

type TradeResult struct {
	Symbol  string `json:"symbol"`
	Qty     int    `json:"qty"`
	Price   int    `json:"price"`
	Total   int    `json:"total"`
	Balance int    `json:"balance"`
	Held    int    `json:"held"`
}

func (e *Engine) BuyShares(ctx context.Context, id int64, symbol string, qty int) (TradeResult, error) {
	if qty <= 0 {
		return TradeResult{}, ErrInvalidQuantity
	}
	c, ok, err := e.Market.GetCompany(ctx, symbol)
	if err != nil {
		return TradeResult{}, err
	}
	if !ok {
		return TradeResult{}, ErrCompanyNotFound
	}

	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return TradeResult{}, err
	}

	total := c.Price * qty
	if p.Balance < total {
		return TradeResult{}, ErrInsufficientFunds
	}

	p.Balance -= total
	if p.Shares == nil {
		p.Shares = map[string]int{}
	}
	p.Shares[symbol] += qty
	if _, err := e.Players.Update(ctx, p); err != nil {
		return TradeResult{}, err
	}
	e.record(telemetry.EventSharesTraded, telemetry.EventMetadata{
		"player_id": id, "symbol": symbol, "qty": qty, "side": "buy",
	})
	return TradeResult{Symbol: symbol, Qty: qty, Price: c.Price, Total: total, Balance: p.Balance, Held: p.Shares[symbol]}, nil
}

func (e *Engine) SellShares(ctx context.Context, id int64, symbol string, qty int) (TradeResult, error) {
	if qty <= 0 {
		return TradeResult{}, ErrInvalidQuantity
	}
	c, ok, err := e.Market.GetCompany(ctx, symbol)
	if err != nil {
		return TradeResult{}, err
	}
	if !ok {
		return TradeResult{}, ErrCompanyNotFound
	}

	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return TradeResult{}, err
	}
	if p.Shares[symbol] < qty {
		return TradeResult{}, ErrInsufficientShares
	}

	total := c.Price * qty
	p.Balance += total
	p.Shares[symbol] -= qty
	if p.Shares[symbol] == 0 {
		delete(p.Shares, symbol)
	}
	if _, err := e.Players.Update(ctx, p); err != nil {
		return TradeResult{}, err
	}
	e.record(telemetry.EventSharesTraded, telemetry.EventMetadata{
		"player_id": id, "symbol": symbol, "qty": qty, "side": "sell",
	})
	return TradeResult{Symbol: symbol, Qty: qty, Price: c.Price, Total: total, Balance: p.Balance, Held: p.Shares[symbol]}, nil
}

func (e *Engine) CreateCorporation(ctx context.Context, id int64, name, corpType string, capital int) (market.Corporation, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return market.Corporation{}, err
	}
	if p.Role != role.Businessman {
		return market.Corporation{}, ErrRoleMismatch
	}
	if capital < e.Balance.MinCorporationCapital {
		return market.Corporation{}, ErrCapitalTooSmall
	}
	if p.Balance < capital {
		return market.Corporation{}, ErrInsufficientFunds
	}

	p.Balance -= capital
	if _, err := e.Players.Update(ctx, p); err != nil {
		return market.Corporation{}, err
	}

	corp := market.Corporation{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        corpType,
		OwnerID:     id,
		Capital:     capital,
		Shares:      market.IssuedShares,
		SharePrice:  capital / market.IssuedShares,
		OwnerShares: market.FounderShares,
		FoundedAt:   e.now(),
	}
	created, err := e.Market.AddCorporation(ctx, corp)
	if err != nil {
		return market.Corporation{}, err
	}
	e.record(telemetry.EventCorporationFounded, telemetry.EventMetadata{
		"player_id": id, "corporation": name, "capital": capital,
	})
	return created, nil
}

func (e *Engine) AddFriend(ctx context.Context, id, friendID int64) error {
	if id == friendID {
		return ErrSelfTarget
	}
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return err
	}
	f, err := e.loadPlayer(ctx, friendID)
	if err != nil {
		return err
	}
	if p.HasFriend(friendID) {
		return ErrAlreadyFriends
	}

	p.Friends = append(p.Friends, friendID)
	f.Friends = append(f.Friends, id)
	if _, err := e.Players.Update(ctx, p); err != nil {
		return err
	}
	_, err = e.Players.Update(ctx, f)
	return err
}

func (e *Engine) Professions(ctx context.Context, id int64) ([]profession.Status, error) {
	p, err := e.loadPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return profession.Evaluate(p), nil
}

type Stats struct {
	Players      int `json:"players"`
	TotalBalance int `json:"total_balance"`
	Arrests      int `json:"arrests"`
	Robberies    int `json:"robberies"`
	Corporations int `json:"corporations"`
}

func (e *Engine) Statistics(ctx context.Context) (Stats, error) {
	players, err := e.Players.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	total := 0
	for _, p := range players {
		total += p.Balance
	}
	arrests, err := e.Crimes.CountSuccessful(ctx, crime.KindArrest)
	if err != nil {
		return Stats{}, err
	}
	robberies, err := e.Crimes.CountSuccessful(ctx, crime.KindRobbery)
	if err != nil {
		return Stats{}, err
	}
	corps, err := e.Market.CountCorporations(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Players:      len(players),
		TotalBalance: total,
		Arrests:      arrests,
		Robberies:    robberies,
		Corporations: corps,
	}, nil
}

// HallOfFame returns the richest players, at most limit entries.
func (e *Engine) HallOfFame(ctx context.Context, limit int) ([]player.Player, error) {
	players, err := e.Players.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Balance != players[j].Balance {
			return players[i].Balance > players[j].Balance
		}
		return players[i].ID < players[j].ID
	})
	if limit <= 0 {
		limit = 10
	}
	if len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}
