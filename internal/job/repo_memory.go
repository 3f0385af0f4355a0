package job

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[int]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		jobs: make(map[int]Job),
	}
}

func (r *MemoryRepo) Seed(ctx context.Context, jobs []Job) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int) (Job, bool, error) {
	_ = ctx

	r.mu.RLock()
	j, ok := r.jobs[id]
	r.mu.RUnlock()

	return j, ok, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Job, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
