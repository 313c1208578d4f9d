package order

import (
	"context"
	"time"
)

// ListFilter condições opcionais da listagem.
type ListFilter struct {
	Status Status // match exato quando não vazio
	Search string // substring (sem caixa) sobre placa OU numero_ordem
}

// Store contrato de persistência das ordens. Implementado por Repo (MySQL)
// e por fakes em memória nos testes.
type Store interface {
	NumberSource

	Insert(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Order, error)

	CountActive(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	SumServiceValueSince(ctx context.Context, since time.Time) (float64, error)
}
