package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store Store, at time.Time) *Service {
	s := NewService(store, nil)
	s.now = fixedClock(at)
	s.seq.now = s.now
	return s
}

func validInput() CreateOrderInput {
	value := 350.0
	return CreateOrderInput{
		VehicleMake:   "Fiat",
		VehicleModel:  "Uno",
		VehiclePlate:  "abc-1234",
		VehicleYear:   2020,
		OriginAddress: "Av. Paulista, 1000 - São Paulo",
		DestAddress:   "Rua Augusta, 500 - São Paulo",
		ServiceValue:  &value,
	}
}

func TestCreateOrderSequenceAndNormalization(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	want := []string{"OS-20240601-001", "OS-20240601-002", "OS-20240601-003"}
	for _, w := range want {
		o, err := svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, w, o.Number)
		assert.Equal(t, StatusAguardando, o.Status)
		assert.Equal(t, "ABC1234", o.VehiclePlate)
		assert.NotEmpty(t, o.ID)
	}
}

func TestCreateOrderPlateRoundTrip(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := newTestService(store, day)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	fetched, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC1234", fetched.VehiclePlate)
}

func TestCreateOrderSequenceResetsNextDay(t *testing.T) {
	store := newMemStore()
	day1 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(store, day1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(ctx, validInput())
		require.NoError(t, err)
	}

	day2 := time.Date(2024, 6, 2, 9, 0, 0, 0, time.Local)
	svc.now = fixedClock(day2)
	svc.seq.now = svc.now

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "OS-20240602-001", o.Number)
}

func TestCreateOrderValidationReportsAllFields(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)

	in := validInput()
	in.VehicleMake = ""
	in.VehiclePlate = "AB-12"
	in.VehicleYear = 1800

	_, err := svc.CreateOrder(context.Background(), in)
	require.Error(t, err)

	ve, ok := apperr.AsValidation(err)
	require.True(t, ok, "expected ValidationError, got %T", err)
	assert.Len(t, ve.Fields, 3)
	assert.Contains(t, ve.Fields, "veiculo_cliente_marca")
	assert.Contains(t, ve.Fields, "veiculo_cliente_placa")
	assert.Contains(t, ve.Fields, "veiculo_cliente_ano")
}

func TestCreateOrderRetriesOnNumberConflict(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := &flakyStore{memStore: newMemStore()}
	svc := newTestService(store, day)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, "OS-20240601-001", first.Number)

	// a próxima leitura não enxerga a ordem existente: a geração cai em 001,
	// o insert conflita no índice único e a repetição resolve em 002
	store.failLookups = 1
	second, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "OS-20240601-002", second.Number)
}

func TestUpdateOrderPartialPatch(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	later := day.Add(2 * time.Hour)
	svc.now = fixedClock(later)

	notes := "cliente aguardando no local"
	updated, err := svc.UpdateOrder(ctx, created.ID, UpdateOrderInput{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, created.Number, updated.Number)
	assert.Equal(t, created.VehiclePlate, updated.VehiclePlate)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.Equal(later))
}

func TestUpdateOrderUnknownID(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)

	notes := "x"
	_, err := svc.UpdateOrder(context.Background(), "nao-existe", UpdateOrderInput{Notes: &notes})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateOrderRejectsIllegalTransition(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	inProgress := StatusEmAndamento
	_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{Status: &inProgress})
	require.NoError(t, err)

	done := StatusConcluido
	_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{Status: &done})
	require.NoError(t, err)

	// terminal: não volta para aguardando nem em_andamento
	back := StatusAguardando
	_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{Status: &back})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderFrozenWhenCanceled(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)

	marca := "Volkswagen"
	_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{VehicleMake: &marca})
	assert.ErrorIs(t, err, ErrOrderFrozen)
}

func TestCancelOrderIdempotentAndTerminal(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	canceled, err := svc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelado, canceled.Status)

	// cancelar de novo é no-op
	again, err := svc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelado, again.Status)

	// concluída não pode ser cancelada
	done, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	inProgress := StatusEmAndamento
	_, err = svc.UpdateOrder(ctx, done.ID, UpdateOrderInput{Status: &inProgress})
	require.NoError(t, err)
	concluido := StatusConcluido
	_, err = svc.UpdateOrder(ctx, done.ID, UpdateOrderInput{Status: &concluido})
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, done.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelKeepsOrderListed(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)
	_, err = svc.CancelOrder(ctx, o.ID)
	require.NoError(t, err)

	all, err := svc.ListOrders(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusCancelado, all[0].Status)
}

func TestListOrdersFilterCombination(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := newTestService(store, day)
	ctx := context.Background()

	mk := func(plate string, status Status) {
		in := validInput()
		in.VehiclePlate = plate
		o, err := svc.CreateOrder(ctx, in)
		require.NoError(t, err)
		if status != StatusAguardando {
			st := StatusEmAndamento
			_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{Status: &st})
			require.NoError(t, err)
			if status == StatusConcluido {
				st = StatusConcluido
				_, err = svc.UpdateOrder(ctx, o.ID, UpdateOrderInput{Status: &st})
				require.NoError(t, err)
			}
		}
	}

	mk("ABC-1234", StatusEmAndamento) // casa status e placa
	mk("ABC-9999", StatusAguardando)  // placa casa, status não
	mk("XYZ-1234", StatusEmAndamento) // status casa, placa não

	got, err := svc.ListOrders(ctx, ListFilter{Status: StatusEmAndamento, Search: "abc"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ABC1234", got[0].VehiclePlate)
	assert.Equal(t, StatusEmAndamento, got[0].Status)
}

func TestHardDeleteRemovesRecord(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	svc := newTestService(newMemStore(), day)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.HardDeleteOrder(ctx, o.ID))

	_, err = svc.GetOrder(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.HardDeleteOrder(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateOrderGeocodesBestEffort(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store := newMemStore()
	svc := NewService(store, nil, WithGeocoder(geocoderFunc(func(ctx context.Context, addr string) (float64, float64, error) {
		return -23.56, -46.65, nil
	})))
	svc.now = fixedClock(day)
	svc.seq.now = svc.now

	o, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, o.OriginLat)
	assert.InDelta(t, -23.56, *o.OriginLat, 0.001)
	require.NotNil(t, o.DestLng)

	// falha do provedor não impede a criação
	svc2 := NewService(store, nil, WithGeocoder(geocoderFunc(func(ctx context.Context, addr string) (float64, float64, error) {
		return 0, 0, errors.New("provider down")
	})))
	svc2.now = fixedClock(day.Add(time.Hour))
	svc2.seq.now = svc2.now

	o2, err := svc2.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	assert.Nil(t, o2.OriginLat)
}

type geocoderFunc func(ctx context.Context, address string) (float64, float64, error)

func (f geocoderFunc) Geocode(ctx context.Context, address string) (float64, float64, error) {
	return f(ctx, address)
}
