package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

func (r *Repo) Insert(ctx context.Context, o *Order) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("numero_ordem")
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, o *Order) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(o).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Order, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var o Order
	if err := db.Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := db.Where("id = ?", id).Delete(&Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// List aplica status exato e busca por placa/numero_ordem, da ordem mais
// recente para a mais antiga. Sem filtro devolve tudo, canceladas incluídas.
func (r *Repo) List(ctx context.Context, f ListFilter) ([]Order, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}

	q := db.Model(&Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToUpper(s) + "%"
		q = q.Where("UPPER(veiculo_cliente_placa) LIKE ? OR UPPER(numero_ordem) LIKE ?", like, like)
	}

	var orders []Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// LastNumberWithPrefix devolve o maior numero_ordem do dia. A ordenação
// lexicográfica equivale à numérica porque o sufixo tem largura fixa.
func (r *Repo) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return "", fmt.Errorf("repo db is nil")
	}

	var numbers []string
	err := db.Model(&Order{}).
		Where("numero_ordem LIKE ?", prefix+"%").
		Order("numero_ordem DESC").
		Limit(1).
		Pluck("numero_ordem", &numbers).Error
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func (r *Repo) CountActive(ctx context.Context) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var total int64
	err := db.Model(&Order{}).Where("status <> ?", StatusCancelado).Count(&total).Error
	return total, err
}

func (r *Repo) CountByStatus(ctx context.Context, s Status) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var total int64
	err := db.Model(&Order{}).Where("status = ?", s).Count(&total).Error
	return total, err
}

func (r *Repo) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var total int64
	err := db.Model(&Order{}).
		Where("status = ? AND updated_at >= ?", StatusConcluido, since).
		Count(&total).Error
	return total, err
}

// SumServiceValueSince soma valor_servico das ordens criadas desde o instante
// dado, sem distinguir status (canceladas contam; comportamento herdado do
// painel, ver DESIGN.md).
func (r *Repo) SumServiceValueSince(ctx context.Context, since time.Time) (float64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return 0, fmt.Errorf("repo db is nil")
	}
	var sum *float64
	err := db.Model(&Order{}).
		Select("SUM(valor_servico)").
		Where("created_at >= ?", since).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
