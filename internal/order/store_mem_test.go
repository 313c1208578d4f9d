package order

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
)

// memStore implementação em memória de Store para os testes de serviço,
// com a mesma semântica de filtros e janelas do Repo.
type memStore struct {
	mu     sync.Mutex
	orders map[string]Order
}

func newMemStore() *memStore {
	return &memStore{orders: make(map[string]Order)}
}

func (m *memStore) Insert(ctx context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.orders {
		if existing.Number == o.Number {
			return apperr.Conflict("numero_ordem")
		}
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memStore) Update(ctx context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copy := o
	return &copy, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memStore) List(ctx context.Context, f ListFilter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	search := strings.ToUpper(strings.TrimSpace(f.Search))
	for _, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToUpper(o.VehiclePlate), search) &&
			!strings.Contains(strings.ToUpper(o.Number), search) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	last := ""
	for _, o := range m.orders {
		if strings.HasPrefix(o.Number, prefix) && o.Number > last {
			last = o.Number
		}
	}
	return last, nil
}

func (m *memStore) CountActive(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, o := range m.orders {
		if o.Status != StatusCancelado {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountByStatus(ctx context.Context, s Status) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, o := range m.orders {
		if o.Status == s {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, o := range m.orders {
		if o.Status == StatusConcluido && !o.UpdatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) SumServiceValueSince(ctx context.Context, since time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum float64
	for _, o := range m.orders {
		if !o.CreatedAt.Before(since) && o.ServiceValue != nil {
			sum += *o.ServiceValue
		}
	}
	return sum, nil
}

// flakyStore força o caminho de fallback/corrida: enquanto failLookups > 0,
// a consulta do último número devolve vazio, como se a leitura não visse as
// ordens já criadas.
type flakyStore struct {
	*memStore
	failLookups int
}

func (f *flakyStore) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	if f.failLookups > 0 {
		f.failLookups--
		return "", nil
	}
	return f.memStore.LastNumberWithPrefix(ctx, prefix)
}
