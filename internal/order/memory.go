package order

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
)

// MemRepo is an in-memory Repository with the same conditional-write
// semantics as PGRepo. It backs tests and STORE_DRIVER=memory.
type MemRepo struct {
	mu     sync.Mutex
	byID   map[string]*Order
	byCode map[string]string
}

func NewMemRepo() *MemRepo {
	return &MemRepo{byID: map[string]*Order{}, byCode: map[string]string{}}
}

func (m *MemRepo) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byCode[o.Code]; ok {
		return ErrDuplicateCode
	}
	m.byID[o.ID] = o.clone()
	m.byCode[o.Code] = o.ID
	return nil
}

func (m *MemRepo) GetByID(_ context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	return o.clone(), nil
}

func (m *MemRepo) GetByCode(ctx context.Context, code string) (*Order, error) {
	m.mu.Lock()
	id, ok := m.byCode[code]
	m.mu.Unlock()
	if !ok {
		return nil, apperr.NotFound("order", code)
	}
	return m.GetByID(ctx, id)
}

func (m *MemRepo) List(_ context.Context, f Filter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f = f.normalized()
	out := []Order{}
	for _, o := range m.byID {
		if f.RestaurantID != "" && o.RestaurantID != f.RestaurantID {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.State != "" && o.State != f.State {
			continue
		}
		out = append(out, *o.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if f.Offset >= len(out) {
		return []Order{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[f.Offset:end], nil
}

func (m *MemRepo) UpdateState(_ context.Context, id string, from, to State, at time.Time, readyAt *time.Time) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	if o.State != from {
		return nil, apperr.Conflict(id)
	}
	o.State = to
	o.UpdatedAt = at
	if readyAt != nil {
		t := *readyAt
		o.ReadyAt = &t
	}
	return o.clone(), nil
}

func (m *MemRepo) MarkNotified(_ context.Context, id string, at time.Time) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	if o.Notified || o.ReadyAt == nil {
		return notifyRejection(o.clone())
	}
	o.Notified = true
	o.NotifiedAt = &at
	return o.clone(), nil
}

func (m *MemRepo) PendingNotification(_ context.Context) iter.Seq2[Order, error] {
	return func(yield func(Order, error) bool) {
		m.mu.Lock()
		var ids []string
		for id, o := range m.byID {
			if o.State == StateReady && !o.Notified {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := m.byID[ids[i]], m.byID[ids[j]]
			if !a.ReadyAt.Equal(*b.ReadyAt) {
				return a.ReadyAt.Before(*b.ReadyAt)
			}
			return a.ID < b.ID
		})
		m.mu.Unlock()

		for _, id := range ids {
			m.mu.Lock()
			o := m.byID[id]
			pending := o.State == StateReady && !o.Notified
			cp := o.clone()
			m.mu.Unlock()
			if !pending {
				continue
			}
			if !yield(*cp, nil) {
				return
			}
		}
	}
}

func (m *MemRepo) Ping(context.Context) error { return nil }
