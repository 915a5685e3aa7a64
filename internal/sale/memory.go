package sale

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
)

// MemRepo keeps sales in insertion order. Between deliberately yields in
// that order, not by time, so the report engine cannot lean on it.
type MemRepo struct {
	mu    sync.RWMutex
	sales []Sale
	codes map[string]bool
}

func NewMemRepo() *MemRepo { return &MemRepo{codes: map[string]bool{}} }

func (m *MemRepo) Create(_ context.Context, s *Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.codes[s.Code] {
		return ErrDuplicateCode
	}
	if s.OrderID != nil {
		for _, prev := range m.sales {
			if prev.OrderID != nil && *prev.OrderID == *s.OrderID {
				return apperr.Validation("order %s already has a sale", *s.OrderID)
			}
		}
	}
	m.sales = append(m.sales, s.clone())
	m.codes[s.Code] = true
	return nil
}

func (m *MemRepo) GetByID(_ context.Context, id string) (*Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sales {
		if s.ID == id {
			cp := s.clone()
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("sale", id)
}

func (m *MemRepo) List(_ context.Context, f Filter) ([]Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f = f.normalized()
	out := []Sale{}
	for _, s := range m.sales {
		if !f.From.IsZero() && s.SoldAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && s.SoldAt.After(f.To) {
			continue
		}
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, s.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].SoldAt.After(out[j].SoldAt)
		}
		return out[i].ID < out[j].ID
	})
	if f.Offset >= len(out) {
		return []Sale{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[f.Offset:end], nil
}

func (m *MemRepo) Between(_ context.Context, start, end time.Time) iter.Seq2[Sale, error] {
	return func(yield func(Sale, error) bool) {
		m.mu.RLock()
		var hits []Sale
		for _, s := range m.sales {
			if !s.SoldAt.Before(start) && !s.SoldAt.After(end) {
				hits = append(hits, s.clone())
			}
		}
		m.mu.RUnlock()

		for _, s := range hits {
			if !yield(s, nil) {
				return
			}
		}
	}
}

func (s Sale) clone() Sale {
	s.Items = append([]SoldItem(nil), s.Items...)
	if s.OrderID != nil {
		id := *s.OrderID
		s.OrderID = &id
	}
	return s
}
