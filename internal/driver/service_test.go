package driver

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	drivers map[string]Driver
	trips   map[string]Trip
}

func newMemStore() *memStore {
	return &memStore{
		drivers: make(map[string]Driver),
		trips:   make(map[string]Trip),
	}
}

func (m *memStore) Insert(_ context.Context, d *Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.drivers {
		if row.CPF == d.CPF {
			return apperr.Conflict("cpf")
		}
	}
	m.drivers[d.ID] = *d
	return nil
}

func (m *memStore) Update(_ context.Context, d *Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[d.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.drivers[d.ID] = *d
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.drivers[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := row
	return &out, nil
}

func (m *memStore) List(_ context.Context, f ListFilter) ([]Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Driver
	for _, row := range m.drivers {
		if f.Status != "" && row.Status != f.Status {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) InsertTrip(_ context.Context, t *Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = *t
	return nil
}

func (m *memStore) UpdateTrip(_ context.Context, t *Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	m.trips[t.ID] = *t
	return nil
}

func (m *memStore) GetTrip(_ context.Context, id string) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.trips[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := row
	return &out, nil
}

func (m *memStore) ListTrips(_ context.Context, driverID string) ([]Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Trip
	for _, row := range m.trips {
		if row.DriverID == driverID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func newTestService(store Store, at time.Time) *Service {
	s := NewService(store, nil)
	s.now = func() time.Time { return at }
	return s
}

func validInput() Input {
	return Input{
		Name:  "João da Silva",
		Phone: "(11) 98765-4321",
		CPF:   "529.982.247-25",
		CNH:   "12345678901",
	}
}

func TestCreateDriverNormalizesCPF(t *testing.T) {
	svc := newTestService(newMemStore(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	d, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "52998224725", d.CPF)
	assert.Equal(t, StatusAtivo, d.Status)
}

func TestCreateDriverInvalidCPF(t *testing.T) {
	svc := newTestService(newMemStore(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))

	in := validInput()
	in.CPF = "111.111.111-11"
	_, err := svc.Create(context.Background(), in)

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "cpf")
}

func TestCreateDriverDuplicateCPF(t *testing.T) {
	svc := newTestService(newMemStore(), time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local))
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.CPF = "52998224725" // mesmo CPF sem máscara
	_, err = svc.Create(ctx, in)
	_, ok := apperr.AsConflict(err)
	assert.True(t, ok)
}

func TestTripLifecycle(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := newTestService(store, day)
	ctx := context.Background()

	d, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	km := 42.0
	valor := 350.0
	trip, err := svc.StartTrip(ctx, d.ID, StartTripInput{
		Origin:     "Av. Paulista, 1000",
		Dest:       "Rua Augusta, 500",
		DistanceKm: &km,
		Value:      &valor,
	})
	require.NoError(t, err)
	assert.Equal(t, TripEmAndamento, trip.Status)

	d, err = svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusEmViagem, d.Status)

	// motorista em viagem não recebe outra viagem nem pode ser desativado
	_, err = svc.StartTrip(ctx, d.ID, StartTripInput{Origin: "A", Dest: "B"})
	assert.ErrorIs(t, err, ErrDriverUnavailable)
	_, err = svc.Deactivate(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDriverUnavailable)

	trip, err = svc.FinishTrip(ctx, trip.ID, false)
	require.NoError(t, err)
	assert.Equal(t, TripConcluida, trip.Status)
	require.NotNil(t, trip.FinishedAt)

	d, err = svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAtivo, d.Status)
}

func TestTripHistorySummary(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := newTestService(store, day)
	ctx := context.Background()

	d, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	km1, v1 := 10.0, 100.0
	t1, err := svc.StartTrip(ctx, d.ID, StartTripInput{Origin: "A", Dest: "B", DistanceKm: &km1, Value: &v1})
	require.NoError(t, err)
	_, err = svc.FinishTrip(ctx, t1.ID, false)
	require.NoError(t, err)

	km2, v2 := 5.0, 50.0
	_, err = svc.StartTrip(ctx, d.ID, StartTripInput{Origin: "C", Dest: "D", DistanceKm: &km2, Value: &v2})
	require.NoError(t, err)

	h, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Summary.Total)
	assert.Equal(t, 1, h.Summary.Concluidas)
	assert.Equal(t, 1, h.Summary.EmAndamento)
	assert.Equal(t, 15.0, h.Summary.TotalKm)
	assert.Equal(t, 150.0, h.Summary.TotalValor)
}

func TestDeactivatePreservesHistory(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	d, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	trip, err := svc.StartTrip(ctx, d.ID, StartTripInput{Origin: "A", Dest: "B"})
	require.NoError(t, err)
	_, err = svc.FinishTrip(ctx, trip.ID, false)
	require.NoError(t, err)

	d, err = svc.Deactivate(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInativo, d.Status)

	h, err := svc.History(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Summary.Total)
}
