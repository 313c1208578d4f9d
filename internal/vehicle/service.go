package vehicle

import (
	"context"
	"fmt"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/brdoc"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/google/uuid"
)

// Service casos de uso da frota.
type Service struct {
	store Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Input dados do cadastro/edição de um veículo da frota.
type Input struct {
	Make     string  `json:"marca"`
	Model    string  `json:"modelo"`
	Plate    string  `json:"placa"`
	Year     int     `json:"ano"`
	Tipo     Tipo    `json:"tipo"`
	Capacity float64 `json:"capacidade_toneladas"`
	PhotoURL string  `json:"foto_url"`
}

func (s *Service) validate(in Input) error {
	ve := apperr.NewValidationError()
	if in.Make == "" {
		ve.Add("marca", "Marca é obrigatória")
	}
	if in.Model == "" {
		ve.Add("modelo", "Modelo é obrigatório")
	}
	if !brdoc.ValidPlate(in.Plate) {
		ve.Add("placa", "Placa inválida (formato: ABC-1234)")
	}
	year := s.now().Year()
	if in.Year < 1900 || in.Year > year+1 {
		ve.Add("ano", "Ano inválido")
	}
	if !ValidTipo(in.Tipo) {
		ve.Add("tipo", "Tipo deve ser guincho, reboque ou plataforma")
	}
	if in.Capacity <= 0 {
		ve.Add("capacidade_toneladas", "Capacidade deve ser maior que zero")
	}
	return ve.ErrOrNil()
}

// Create cadastra um veículo com status disponivel. Placa duplicada vira
// conflito via índice único.
func (s *Service) Create(ctx context.Context, in Input) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	v := &Vehicle{
		ID:        uuid.NewString(),
		Make:      in.Make,
		Model:     in.Model,
		Plate:     brdoc.NormalizePlate(in.Plate),
		Year:      in.Year,
		Tipo:      in.Tipo,
		Capacity:  in.Capacity,
		Status:    StatusDisponivel,
		PhotoURL:  in.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, v); err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Infof("veículo cadastrado: %s %s (%s)", v.Make, v.Model, v.Plate)
	}
	return v, nil
}

// Update substitui os dados cadastrais; status é preservado.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Make = in.Make
	v.Model = in.Model
	v.Plate = brdoc.NormalizePlate(in.Plate)
	v.Year = in.Year
	v.Tipo = in.Tipo
	v.Capacity = in.Capacity
	v.PhotoURL = in.PhotoURL
	v.UpdatedAt = s.now()

	if err := s.store.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ToggleMaintenance alterna entre manutencao e disponivel. Um veículo em uso
// primeiro precisa ser liberado da viagem.
func (s *Service) ToggleMaintenance(ctx context.Context, id string) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch v.Status {
	case StatusManutencao:
		v.Status = StatusDisponivel
	case StatusDisponivel:
		v.Status = StatusManutencao
	default:
		ve := apperr.NewValidationError()
		ve.Add("status", "Veículo em uso não pode entrar em manutenção")
		return nil, ve.ErrOrNil()
	}
	v.UpdatedAt = s.now()
	if err := s.store.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetStatus troca o status de disponibilidade (usado pelo despacho de viagens).
func (s *Service) SetStatus(ctx context.Context, id string, st Status) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	if !ValidStatus(st) {
		ve := apperr.NewValidationError()
		ve.Add("status", "Status desconhecido")
		return nil, ve.ErrOrNil()
	}
	v, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Status = st
	v.UpdatedAt = s.now()
	if err := s.store.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("vehicle service not initialized")
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	return s.store.List(ctx, f)
}

// FleetSummary contagem por status para os cards do painel.
type FleetSummary struct {
	Disponivel int64 `json:"disponivel"`
	EmUso      int64 `json:"em_uso"`
	Manutencao int64 `json:"manutencao"`
}

func (s *Service) Summary(ctx context.Context) (*FleetSummary, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("vehicle service not initialized")
	}
	var out FleetSummary
	var err error
	if out.Disponivel, err = s.store.CountByStatus(ctx, StatusDisponivel); err != nil {
		return nil, err
	}
	if out.EmUso, err = s.store.CountByStatus(ctx, StatusEmUso); err != nil {
		return nil, err
	}
	if out.Manutencao, err = s.store.CountByStatus(ctx, StatusManutencao); err != nil {
		return nil, err
	}
	return &out, nil
}
