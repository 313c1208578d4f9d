package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"gorm.io/gorm"
)

// Repo implementação MySQL de Store.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Insert(ctx context.Context, d *Driver) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("cpf")
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, d *Driver) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Save(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("cpf")
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Driver, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var d Driver
	if err := db.Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Driver, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := db.Model(&Driver{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		term := "%" + strings.ToUpper(f.Search) + "%"
		q = q.Where("UPPER(nome) LIKE ? OR cpf LIKE ? OR UPPER(cnh) LIKE ?", term, term, term)
	}
	var out []Driver
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) InsertTrip(ctx context.Context, t *Trip) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(t).Error
}

func (r *Repo) UpdateTrip(ctx context.Context, t *Trip) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(t).Error
}

func (r *Repo) GetTrip(ctx context.Context, id string) (*Trip, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var t Trip
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) ListTrips(ctx context.Context, driverID string) ([]Trip, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var out []Trip
	err := db.Where("motorista_id = ?", driverID).
		Order("data_inicio DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
