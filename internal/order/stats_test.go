package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	store := newMemStore()

	seed := func(id string, status Status, createdAt, updatedAt time.Time, value *float64) {
		store.orders[id] = Order{
			ID:        id,
			Number:    "OS-20240615-" + id,
			Status:    status,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			ServiceValue: value,
		}
	}

	v100 := 100.0
	v50 := 50.0

	// A: aguardando, criada neste mês
	seed("00A", StatusAguardando, now.Add(-48*time.Hour), now.Add(-48*time.Hour), nil)
	// B: concluída hoje, valor 100
	seed("00B", StatusConcluido, now.Add(-72*time.Hour), now.Add(-2*time.Hour), &v100)
	// C: cancelada, criada neste mês, valor 50
	seed("00C", StatusCancelado, now.Add(-24*time.Hour), now.Add(-20*time.Hour), &v50)
	// D: concluída em dia anterior, valor fora do mês corrente
	vOld := 999.0
	seed("00D", StatusConcluido, time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local), time.Date(2024, 5, 11, 8, 0, 0, 0, time.Local), &vOld)

	agg := NewStatsAggregator(store)
	agg.now = fixedClock(now)

	stats, err := agg.Snapshot(context.Background())
	require.NoError(t, err)

	// cancelada fica fora do total; concluída de outro dia conta no total
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Aguardando)
	assert.Equal(t, int64(0), stats.EmAndamento)
	assert.Equal(t, int64(1), stats.ConcluidoHoje)
	// canceladas ainda somam na receita do mês (comportamento herdado)
	assert.Equal(t, 150.0, stats.ValorTotalMes)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2024, 6, 15, 23, 59, 59, 0, time.Local)
	got := StartOfDay(at)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local), got)
}

func TestStartOfMonth(t *testing.T) {
	at := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)
	got := StartOfMonth(at)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), got)
}
