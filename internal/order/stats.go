package order

import (
	"context"
	"fmt"
	"time"
)

// Stats contadores exibidos no painel. Recalculados a cada chamada; quem
// consome decide a frequência de atualização.
type Stats struct {
	Total         int64   `json:"total"`
	Aguardando    int64   `json:"aguardando"`
	EmAndamento   int64   `json:"em_andamento"`
	ConcluidoHoje int64   `json:"concluido_hoje"`
	ValorTotalMes float64 `json:"valor_total_mes"`
}

// StatsSource subconjunto de Store que o agregador consulta.
type StatsSource interface {
	CountActive(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	SumServiceValueSince(ctx context.Context, since time.Time) (float64, error)
}

// StatsAggregator deriva os contadores do conjunto de ordens.
type StatsAggregator struct {
	src StatsSource
	now func() time.Time
}

func NewStatsAggregator(src StatsSource) *StatsAggregator {
	return &StatsAggregator{src: src, now: time.Now}
}

// Snapshot calcula os contadores do momento.
//
// concluido_hoje infere a conclusão pelo updated_at dentro do dia corrente:
// concluido é terminal, então o último update de uma ordem concluída é a
// própria transição. valor_total_mes soma o mês por created_at, canceladas
// incluídas (comportamento herdado do painel).
func (a *StatsAggregator) Snapshot(ctx context.Context) (*Stats, error) {
	if a == nil || a.src == nil {
		return nil, fmt.Errorf("stats aggregator not initialized")
	}

	now := a.now()

	total, err := a.src.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	waiting, err := a.src.CountByStatus(ctx, StatusAguardando)
	if err != nil {
		return nil, err
	}
	inProgress, err := a.src.CountByStatus(ctx, StatusEmAndamento)
	if err != nil {
		return nil, err
	}
	completedToday, err := a.src.CountCompletedSince(ctx, StartOfDay(now))
	if err != nil {
		return nil, err
	}
	monthTotal, err := a.src.SumServiceValueSince(ctx, StartOfMonth(now))
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:         total,
		Aguardando:    waiting,
		EmAndamento:   inProgress,
		ConcluidoHoje: completedToday,
		ValorTotalMes: monthTotal,
	}, nil
}

// StartOfDay primeiro instante do dia de t, no fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth primeiro instante do mês de t, no fuso de t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
