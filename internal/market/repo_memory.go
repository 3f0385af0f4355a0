package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	companies map[string]Company
	corps     map[string]Corporation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		companies: make(map[string]Company),
		corps:     make(map[string]Corporation),
	}
}

func (r *MemoryRepo) Seed(ctx context.Context, companies []Company) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range companies {
		r.companies[c.Symbol] = c
	}
	return nil
}

func (r *MemoryRepo) GetCompany(ctx context.Context, symbol string) (Company, bool, error) {
	_ = ctx

	r.mu.RLock()
	c, ok := r.companies[symbol]
	r.mu.RUnlock()

	return c, ok, nil
}

func (r *MemoryRepo) ListCompanies(ctx context.Context) ([]Company, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// SetPrice records a new quote and appends to the bounded history.
func (r *MemoryRepo) SetPrice(ctx context.Context, symbol string, price int, at time.Time) (Company, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.companies[symbol]
	if !ok {
		return Company{}, fmt.Errorf("company not found: %s", symbol)
	}
	c.Price = price
	c.History = append(c.History, PricePoint{Price: price, At: at})
	if len(c.History) > MaxHistory {
		c.History = c.History[len(c.History)-MaxHistory:]
	}
	r.companies[symbol] = c
	return c, nil
}

func (r *MemoryRepo) AddCorporation(ctx context.Context, c Corporation) (Corporation, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.corps[c.ID]; ok {
		return Corporation{}, fmt.Errorf("corporation already exists: %s", c.ID)
	}
	r.corps[c.ID] = c
	return c, nil
}

func (r *MemoryRepo) ListCorporations(ctx context.Context) ([]Corporation, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Corporation, 0, len(r.corps))
	for _, c := range r.corps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FoundedAt.Before(out[j].FoundedAt) })
	return out, nil
}

func (r *MemoryRepo) CountCorporations(ctx context.Context) (int, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.corps), nil
}
