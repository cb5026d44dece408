package server

import (
	"context"
	"encoding/json"
	"sync"

	"agartha/internal/data"
)

// GeneratedDescription marks practitioners created by the admin generator.
const GeneratedDescription = "Generated Practitioner"

// Store persists Agartha documents. Getters return (nil, nil) when the
// document does not exist.
type Store interface {
	InsertPractitioner(ctx context.Context, p *data.Practitioner) (bool, error)
	GetPractitioner(ctx context.Context, id string) (*data.Practitioner, error)
	FindPractitionerByEmail(ctx context.Context, email string) (*data.Practitioner, error)
	ListPractitioners(ctx context.Context) ([]*data.Practitioner, error)
	// UpdatePractitioners loads the practitioners with ids (nil for missing
	// ones, same order), lets fn modify them and saves every non-nil entry
	// atomically. An error from fn aborts the update.
	UpdatePractitioners(ctx context.Context, ids []string, fn func([]*data.Practitioner) error) ([]*data.Practitioner, error)
	RemovePractitioner(ctx context.Context, id string) (bool, error)
	RemoveAllPractitioners(ctx context.Context) error
	RemoveGeneratedPractitioners(ctx context.Context) error

	GetSettings(ctx context.Context) (*data.Settings, error)
	PutSettings(ctx context.Context, s *data.Settings) error
	// UpdateSettings loads the settings document, or fallback when none is
	// stored yet, lets fn modify it and saves it atomically.
	UpdateSettings(ctx context.Context, fallback *data.Settings, fn func(*data.Settings) error) (*data.Settings, error)

	PutImage(ctx context.Context, img *data.Image) error
	GetImage(ctx context.Context, id string) (*data.Image, error)

	InsertMonitorItem(ctx context.Context, item data.MonitorItem) error
	CountMonitorItems(ctx context.Context) (int, error)

	Close() error
}

// updatePractitioner is UpdatePractitioners for a single id. It returns
// (nil, nil) when the practitioner does not exist.
func updatePractitioner(ctx context.Context, s Store, id string, fn func(*data.Practitioner) error) (*data.Practitioner, error) {
	out, err := s.UpdatePractitioners(ctx, []string{id}, func(ps []*data.Practitioner) error {
		if ps[0] == nil {
			return nil
		}
		return fn(ps[0])
	})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// MemoryStore keeps every document in process. Documents are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu sync.Mutex

	practitioners map[string]*data.Practitioner
	order         []string
	settings      *data.Settings
	images        map[string]*data.Image
	monitor       []data.MonitorItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		practitioners: map[string]*data.Practitioner{},
		images:        map[string]*data.Image{},
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

func (m *MemoryStore) InsertPractitioner(_ context.Context, p *data.Practitioner) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.practitioners[p.ID]; ok {
		return false, nil
	}
	m.practitioners[p.ID] = clone(p)
	m.order = append(m.order, p.ID)
	return true, nil
}

func (m *MemoryStore) GetPractitioner(_ context.Context, id string) (*data.Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.practitioners[id]), nil
}

func (m *MemoryStore) FindPractitionerByEmail(_ context.Context, email string) (*data.Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		p := m.practitioners[id]
		if p.Email != nil && *p.Email == email {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListPractitioners(_ context.Context) ([]*data.Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*data.Practitioner, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, clone(m.practitioners[id]))
	}
	return out, nil
}

func (m *MemoryStore) UpdatePractitioners(_ context.Context, ids []string, fn func([]*data.Practitioner) error) ([]*data.Practitioner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ps := make([]*data.Practitioner, len(ids))
	for i, id := range ids {
		ps[i] = clone(m.practitioners[id])
	}
	if err := fn(ps); err != nil {
		return nil, err
	}
	out := make([]*data.Practitioner, len(ps))
	for i, p := range ps {
		if p == nil {
			continue
		}
		m.practitioners[p.ID] = clone(p)
		out[i] = clone(p)
	}
	return out, nil
}

func (m *MemoryStore) RemovePractitioner(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.practitioners[id]; !ok {
		return false, nil
	}
	m.removeLocked(func(p *data.Practitioner) bool { return p.ID == id })
	return true, nil
}

func (m *MemoryStore) RemoveAllPractitioners(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.practitioners = map[string]*data.Practitioner{}
	m.order = nil
	return nil
}

func (m *MemoryStore) RemoveGeneratedPractitioners(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(func(p *data.Practitioner) bool {
		return p.Description != nil && *p.Description == GeneratedDescription
	})
	return nil
}

func (m *MemoryStore) removeLocked(match func(*data.Practitioner) bool) {
	kept := m.order[:0]
	for _, id := range m.order {
		if match(m.practitioners[id]) {
			delete(m.practitioners, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}

func (m *MemoryStore) GetSettings(_ context.Context) (*data.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.settings), nil
}

func (m *MemoryStore) PutSettings(_ context.Context, s *data.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = clone(s)
	return nil
}

func (m *MemoryStore) UpdateSettings(_ context.Context, fallback *data.Settings, fn func(*data.Settings) error) (*data.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := clone(m.settings)
	if st == nil {
		st = clone(fallback)
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	m.settings = clone(st)
	return st, nil
}

func (m *MemoryStore) PutImage(_ context.Context, img *data.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[img.ID] = clone(img)
	return nil
}

func (m *MemoryStore) GetImage(_ context.Context, id string) (*data.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.images[id]), nil
}

func (m *MemoryStore) InsertMonitorItem(_ context.Context, item data.MonitorItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.monitor = append(m.monitor, item)
	return nil
}

func (m *MemoryStore) CountMonitorItems(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.monitor), nil
}

func (m *MemoryStore) Close() error { return nil }

