package player

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	players map[int64]Player
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		players: make(map[int64]Player),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, p Player) (Player, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[p.ID]; ok {
		return Player{}, fmt.Errorf("player already exists: %d", p.ID)
	}
	r.players[p.ID] = clone(p)
	return p, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Player, bool, error) {
	_ = ctx

	r.mu.RLock()
	p, ok := r.players[id]
	r.mu.RUnlock()

	return clone(p), ok, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Player) (Player, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[p.ID]; !ok {
		return Player{}, fmt.Errorf("player not found: %d", p.ID)
	}
	r.players[p.ID] = clone(p)
	return p, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Player, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players), nil
}

// clone deep-copies the maps and slices so callers never share state with
// the repo.
func clone(p Player) Player {
	out := p
	if p.Skills != nil {
		out.Skills = make(map[string]Skill, len(p.Skills))
		for k, v := range p.Skills {
			out.Skills[k] = v
		}
	}
	if p.Shares != nil {
		out.Shares = make(map[string]int, len(p.Shares))
		for k, v := range p.Shares {
			out.Shares[k] = v
		}
	}
	if p.LastWorkedAt != nil {
		out.LastWorkedAt = make(map[int]time.Time, len(p.LastWorkedAt))
		for k, v := range p.LastWorkedAt {
			out.LastWorkedAt[k] = v
		}
	}
	if p.Properties != nil {
		out.Properties = append([]Property{}, p.Properties...)
	}
	if p.Friends != nil {
		out.Friends = append([]int64{}, p.Friends...)
	}
	if p.ArrestedUntil != nil {
		t := *p.ArrestedUntil
		out.ArrestedUntil = &t
	}
	if p.LastBonusAt != nil {
		t := *p.LastBonusAt
		out.LastBonusAt = &t
	}
	return out
}
