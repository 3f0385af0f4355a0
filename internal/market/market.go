package market

import "time"

// Company is a publicly traded stock. Price is in whole currency units.
type Company struct {
	Symbol  string       `json:"symbol"`
	Name    string       `json:"name"`
	Price   int          `json:"price"`
	History []PricePoint `json:"history,omitempty"`
}

type PricePoint struct {
	Price int       `json:"price"`
	At    time.Time `json:"at"`
}

// MaxHistory bounds the per-company history kept in memory.
const MaxHistory = 50

// Corporation is a player-founded company. 1000 shares are issued at
// capital/1000 each; the founder keeps 200.
type Corporation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	OwnerID     int64     `json:"owner_id"`
	Capital     int       `json:"capital"`
	Shares      int       `json:"shares"`
	SharePrice  int       `json:"share_price"`
	OwnerShares int       `json:"owner_shares"`
	FoundedAt   time.Time `json:"founded_at"`
}

const (
	IssuedShares  = 1000
	FounderShares = 200
)

// Defaults seeds the exchange with the three starting tickers.
func Defaults() []Company {
	return []Company{
		{Symbol: "METL", Name: "Metallurg Holding", Price: 100},
		{Symbol: "TECH", Name: "TechProm", Price: 150},
		{Symbol: "OILG", Name: "OilGarant", Price: 120},
	}
}
