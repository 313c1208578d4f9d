package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/brdoc"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/google/uuid"
)

// ErrDriverUnavailable motorista inativo ou já em viagem.
var ErrDriverUnavailable = fmt.Errorf("motorista não está disponível para viagem")

// Service casos de uso de motoristas e do histórico de viagens.
type Service struct {
	store Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Input dados do cadastro/edição de um motorista.
type Input struct {
	Name     string `json:"nome"`
	Phone    string `json:"telefone"`
	CPF      string `json:"cpf"`
	CNH      string `json:"cnh"`
	PhotoURL string `json:"foto_url"`
}

func validate(in Input) error {
	ve := apperr.NewValidationError()
	if in.Name == "" {
		ve.Add("nome", "Nome é obrigatório")
	}
	if in.Phone == "" {
		ve.Add("telefone", "Telefone é obrigatório")
	}
	if !brdoc.ValidCPF(in.CPF) {
		ve.Add("cpf", "CPF inválido")
	}
	if in.CNH == "" {
		ve.Add("cnh", "CNH é obrigatória")
	}
	return ve.ErrOrNil()
}

// Create cadastra um motorista com status ativo. O CPF é guardado só com
// dígitos; duplicado vira conflito via índice único.
func (s *Service) Create(ctx context.Context, in Input) (*Driver, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	d := &Driver{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		CPF:       brdoc.NormalizeCPF(in.CPF),
		CNH:       in.CNH,
		Status:    StatusAtivo,
		PhotoURL:  in.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, d); err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Infof("motorista cadastrado: %s (CPF %s)", d.Name, brdoc.FormatCPF(d.CPF))
	}
	return d, nil
}

// Update substitui os dados cadastrais; status é preservado.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Driver, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = in.Name
	d.Phone = in.Phone
	d.CPF = brdoc.NormalizeCPF(in.CPF)
	d.CNH = in.CNH
	d.PhotoURL = in.PhotoURL
	d.UpdatedAt = s.now()

	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deactivate desativa o motorista em vez de removê-lo, preservando o
// histórico de viagens.
func (s *Service) Deactivate(ctx context.Context, id string) (*Driver, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status == StatusEmViagem {
		return nil, ErrDriverUnavailable
	}
	d.Status = StatusInativo
	d.UpdatedAt = s.now()
	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Driver, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Driver, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	return s.store.List(ctx, f)
}

// StartTripInput dados do despacho de uma viagem.
type StartTripInput struct {
	Origin     string   `json:"origem"`
	Dest       string   `json:"destino"`
	DistanceKm *float64 `json:"distancia_km"`
	Value      *float64 `json:"valor"`
}

// StartTrip abre uma viagem para o motorista e o marca como em_viagem.
// Só motoristas ativos podem ser despachados.
func (s *Service) StartTrip(ctx context.Context, driverID string, in StartTripInput) (*Trip, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	ve := apperr.NewValidationError()
	if in.Origin == "" {
		ve.Add("origem", "Origem é obrigatória")
	}
	if in.Dest == "" {
		ve.Add("destino", "Destino é obrigatório")
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	d, err := s.store.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d.Status != StatusAtivo {
		return nil, ErrDriverUnavailable
	}

	now := s.now()
	t := &Trip{
		ID:         uuid.NewString(),
		DriverID:   d.ID,
		Origin:     in.Origin,
		Dest:       in.Dest,
		Status:     TripEmAndamento,
		StartedAt:  now,
		DistanceKm: in.DistanceKm,
		Value:      in.Value,
	}
	if err := s.store.InsertTrip(ctx, t); err != nil {
		return nil, err
	}

	d.Status = StatusEmViagem
	d.UpdatedAt = now
	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return t, nil
}

// FinishTrip conclui (ou cancela) a viagem e devolve o motorista para ativo.
func (s *Service) FinishTrip(ctx context.Context, tripID string, canceled bool) (*Trip, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.Status != TripEmAndamento {
		return nil, fmt.Errorf("viagem já encerrada")
	}

	now := s.now()
	t.Status = TripConcluida
	if canceled {
		t.Status = TripCancelada
	}
	t.FinishedAt = &now
	if err := s.store.UpdateTrip(ctx, t); err != nil {
		return nil, err
	}

	d, err := s.store.GetByID(ctx, t.DriverID)
	if err != nil {
		return nil, err
	}
	if d.Status == StatusEmViagem {
		d.Status = StatusAtivo
		d.UpdatedAt = now
		if err := s.store.Update(ctx, d); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// TripSummary agregados do histórico de um motorista.
type TripSummary struct {
	Total       int     `json:"total"`
	Concluidas  int     `json:"concluidas"`
	EmAndamento int     `json:"em_andamento"`
	TotalKm     float64 `json:"total_km"`
	TotalValor  float64 `json:"total_valor"`
}

// TripHistory viagens mais recentes primeiro, com os agregados do período.
type TripHistory struct {
	Trips   []Trip      `json:"viagens"`
	Summary TripSummary `json:"resumo"`
}

func (s *Service) History(ctx context.Context, driverID string) (*TripHistory, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("driver service not initialized")
	}
	if _, err := s.store.GetByID(ctx, driverID); err != nil {
		return nil, err
	}
	trips, err := s.store.ListTrips(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []Trip{}
	}

	h := &TripHistory{Trips: trips}
	h.Summary.Total = len(trips)
	for _, t := range trips {
		switch t.Status {
		case TripConcluida:
			h.Summary.Concluidas++
		case TripEmAndamento:
			h.Summary.EmAndamento++
		}
		if t.DistanceKm != nil {
			h.Summary.TotalKm += *t.DistanceKm
		}
		if t.Value != nil {
			h.Summary.TotalValor += *t.Value
		}
	}
	return h, nil
}
