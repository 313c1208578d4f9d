package vehicle

import "context"

// ListFilter restringe a listagem da frota.
type ListFilter struct {
	Status Status
	Search string
}

// Store abstrai a persistência da frota.
type Store interface {
	Insert(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Vehicle, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
}
