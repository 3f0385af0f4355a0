package crime

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	records   map[string]Interaction
	successes map[Kind]int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		records:   make(map[string]Interaction),
		successes: make(map[Kind]int),
	}
}

func (r *MemoryRepo) Add(ctx context.Context, in Interaction) error {
	_ = ctx

	r.mu.Lock()
	if _, dup := r.records[in.ID]; !dup && in.Success {
		r.successes[in.Kind]++
	}
	r.records[in.ID] = in
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Interaction, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Interaction, 0, len(r.records))
	for _, in := range r.records {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// CountSuccessful reports the lifetime number of successful interactions of
// one kind. The counter is cumulative and unaffected by record expiry.
func (r *MemoryRepo) CountSuccessful(ctx context.Context, kind Kind) (int, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.successes[kind], nil
}

// ExpireBefore drops records created before the cutoff and reports how many
// were removed. Success counters are untouched.
func (r *MemoryRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, in := range r.records {
		if in.CreatedAt.Before(cutoff) {
			delete(r.records, id)
			removed++
		}
	}
	return removed, nil
}
