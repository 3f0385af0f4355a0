package player

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type fileState struct {
	Players map[int64]Player `json:"players"`
}

// FileRepo persists players to a single JSON file under dataDir. Every
// mutation saves synchronously; reads serve from the in-memory state.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "players.json"),
		s:    fileState{Players: map[int64]Player{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Players == nil {
		loaded.Players = map[int64]Player{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Create(ctx context.Context, p Player) (Player, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.s.Players[p.ID]; ok {
		return Player{}, fmt.Errorf("player already exists: %d", p.ID)
	}
	r.s.Players[p.ID] = clone(p)
	if err := r.saveLocked(); err != nil {
		delete(r.s.Players, p.ID)
		return Player{}, err
	}
	return p, nil
}

func (r *FileRepo) Get(ctx context.Context, id int64) (Player, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.s.Players[id]
	if !ok {
		return Player{}, false, nil
	}
	return clone(p), true, nil
}

func (r *FileRepo) Update(ctx context.Context, p Player) (Player, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.s.Players[p.ID]
	if !ok {
		return Player{}, fmt.Errorf("player not found: %d", p.ID)
	}
	r.s.Players[p.ID] = clone(p)
	if err := r.saveLocked(); err != nil {
		r.s.Players[p.ID] = prev
		return Player{}, err
	}
	return p, nil
}

func (r *FileRepo) List(ctx context.Context) ([]Player, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Player, 0, len(r.s.Players))
	for _, p := range r.s.Players {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FileRepo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.s.Players), nil
}
