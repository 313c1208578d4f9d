package driver

import "context"

// ListFilter restringe a listagem de motoristas.
type ListFilter struct {
	Status Status
	Search string
}

// Store abstrai a persistência de motoristas e viagens.
type Store interface {
	Insert(ctx context.Context, d *Driver) error
	Update(ctx context.Context, d *Driver) error
	GetByID(ctx context.Context, id string) (*Driver, error)
	List(ctx context.Context, f ListFilter) ([]Driver, error)

	InsertTrip(ctx context.Context, t *Trip) error
	UpdateTrip(ctx context.Context, t *Trip) error
	GetTrip(ctx context.Context, id string) (*Trip, error)
	ListTrips(ctx context.Context, driverID string) ([]Trip, error)
}
