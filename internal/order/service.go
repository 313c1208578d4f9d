package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/brdoc"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/logger"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/metrics"
	"github.com/google/uuid"
)

// ErrOrderFrozen devolvido ao tentar editar campos de uma ordem cancelada.
var ErrOrderFrozen = errors.New("ordem cancelada não pode ser alterada")

// tentativas do par gerar-número + insert quando o índice único conflita
const createAttempts = 3

// Geocoder resolve um endereço em coordenadas. Opcional: quando ausente as
// ordens ficam sem lat/lng.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// Service casos de uso das ordens de serviço (independente do transporte).
type Service struct {
	store Store
	seq   *SequenceGenerator
	geo   Geocoder
	m     *metrics.OrderMetrics
	log   logger.Logger
	now   func() time.Time
}

type ServiceOption func(*Service)

// WithGeocoder habilita o preenchimento best-effort de coordenadas.
func WithGeocoder(g Geocoder) ServiceOption {
	return func(s *Service) { s.geo = g }
}

// WithMetrics habilita os contadores Prometheus do domínio.
func WithMetrics(m *metrics.OrderMetrics) ServiceOption {
	return func(s *Service) { s.m = m }
}

func NewService(store Store, log logger.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		seq:   NewSequenceGenerator(store, log),
		log:   log,
		now:   time.Now,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(s)
		}
	}
	return s
}

// CreateOrderInput dados da abertura de uma ordem.
type CreateOrderInput struct {
	ClientID      string   `json:"cliente_id"`
	VehicleMake   string   `json:"veiculo_cliente_marca"`
	VehicleModel  string   `json:"veiculo_cliente_modelo"`
	VehiclePlate  string   `json:"veiculo_cliente_placa"`
	VehicleYear   int      `json:"veiculo_cliente_ano"`
	OriginAddress string   `json:"origem_endereco"`
	DestAddress   string   `json:"destino_endereco"`
	DistanceKm    *float64 `json:"distancia_km"`
	ServiceValue  *float64 `json:"valor_servico"`
	Notes         string   `json:"observacoes"`
}

// UpdateOrderInput patch parcial: só os campos não nulos são aplicados.
type UpdateOrderInput struct {
	VehicleMake   *string  `json:"veiculo_cliente_marca"`
	VehicleModel  *string  `json:"veiculo_cliente_modelo"`
	VehiclePlate  *string  `json:"veiculo_cliente_placa"`
	VehicleYear   *int     `json:"veiculo_cliente_ano"`
	OriginAddress *string  `json:"origem_endereco"`
	DestAddress   *string  `json:"destino_endereco"`
	DistanceKm    *float64 `json:"distancia_km"`
	ServiceValue  *float64 `json:"valor_servico"`
	Status        *Status  `json:"status"`
	Notes         *string  `json:"observacoes"`
}

// touchesFields informa se o patch altera algo além do status.
func (in UpdateOrderInput) touchesFields() bool {
	return in.VehicleMake != nil || in.VehicleModel != nil || in.VehiclePlate != nil ||
		in.VehicleYear != nil || in.OriginAddress != nil || in.DestAddress != nil ||
		in.DistanceKm != nil || in.ServiceValue != nil || in.Notes != nil
}

// CreateOrder valida, numera e persiste uma nova ordem com status aguardando.
// Conflito no índice único de numero_ordem (criações concorrentes) recalcula
// o número e tenta de novo.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	now := s.now()
	if ve := validateCreate(in, now); !ve.Empty() {
		s.m.ValidationFailure()
		return nil, ve
	}

	o := &Order{
		ID:            uuid.NewString(),
		ClientID:      strings.TrimSpace(in.ClientID),
		VehicleMake:   strings.TrimSpace(in.VehicleMake),
		VehicleModel:  strings.TrimSpace(in.VehicleModel),
		VehiclePlate:  brdoc.NormalizePlate(in.VehiclePlate),
		VehicleYear:   in.VehicleYear,
		OriginAddress: strings.TrimSpace(in.OriginAddress),
		DestAddress:   strings.TrimSpace(in.DestAddress),
		DistanceKm:    in.DistanceKm,
		ServiceValue:  in.ServiceValue,
		Status:        StatusAguardando,
		Notes:         strings.TrimSpace(in.Notes),
	}

	s.fillCoordinates(ctx, o)

	for attempt := 0; attempt < createAttempts; attempt++ {
		num, err := s.seq.Next(ctx)
		if err != nil {
			return nil, err
		}
		o.Number = num

		err = s.store.Insert(ctx, o)
		if err == nil {
			s.m.OrderCreated()
			return o, nil
		}
		if _, ok := apperr.AsConflict(err); ok {
			// outra criação levou esse número; recalcula e tenta de novo
			s.m.SequenceRetry()
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("não foi possível numerar a ordem após %d tentativas", createAttempts)
}

// UpdateOrder aplica um patch parcial. created_at e numero_ordem nunca mudam;
// mudanças de status passam pelo grafo de transições.
func (s *Service) UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (*Order, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.ErrNotFound
	}

	o, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if ve := validateUpdate(in, now); !ve.Empty() {
		s.m.ValidationFailure()
		return nil, ve
	}

	if o.Status == StatusCancelado && in.touchesFields() {
		return nil, ErrOrderFrozen
	}

	if in.Status != nil && *in.Status != o.Status {
		if err := ApplyTransition(o, *in.Status, now); err != nil {
			return nil, err
		}
		s.m.StatusTransition(string(*in.Status))
	}

	if in.VehicleMake != nil {
		o.VehicleMake = strings.TrimSpace(*in.VehicleMake)
	}
	if in.VehicleModel != nil {
		o.VehicleModel = strings.TrimSpace(*in.VehicleModel)
	}
	if in.VehiclePlate != nil {
		o.VehiclePlate = brdoc.NormalizePlate(*in.VehiclePlate)
	}
	if in.VehicleYear != nil {
		o.VehicleYear = *in.VehicleYear
	}
	if in.OriginAddress != nil {
		o.OriginAddress = strings.TrimSpace(*in.OriginAddress)
	}
	if in.DestAddress != nil {
		o.DestAddress = strings.TrimSpace(*in.DestAddress)
	}
	if in.DistanceKm != nil {
		o.DistanceKm = in.DistanceKm
	}
	if in.ServiceValue != nil {
		o.ServiceValue = in.ServiceValue
	}
	if in.Notes != nil {
		o.Notes = strings.TrimSpace(*in.Notes)
	}
	o.UpdatedAt = now

	if err := s.store.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CancelOrder é o soft delete: marca como cancelada mantendo o registro nas
// listagens. Cancelar uma ordem já cancelada é um no-op.
func (s *Service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}

	o, err := s.store.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCancelado {
		return o, nil
	}

	if err := ApplyTransition(o, StatusCancelado, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, o); err != nil {
		return nil, err
	}
	s.m.StatusTransition(string(StatusCancelado))
	return o, nil
}

// HardDeleteOrder remove fisicamente o registro. Fora do fluxo normal.
func (s *Service) HardDeleteOrder(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, f ListFilter) ([]Order, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.store.List(ctx, f)
}

// fillCoordinates tenta geocodificar origem e destino. Falhas só geram log e
// métrica; a criação da ordem nunca depende do provedor.
func (s *Service) fillCoordinates(ctx context.Context, o *Order) {
	if s.geo == nil {
		return
	}
	if lat, lng, err := s.geo.Geocode(ctx, o.OriginAddress); err != nil {
		s.m.GeocodeFailure()
		if s.log != nil {
			s.log.Warnf("geocode origem failed for order: %v", err)
		}
	} else {
		o.OriginLat, o.OriginLng = &lat, &lng
	}
	if lat, lng, err := s.geo.Geocode(ctx, o.DestAddress); err != nil {
		s.m.GeocodeFailure()
		if s.log != nil {
			s.log.Warnf("geocode destino failed for order: %v", err)
		}
	} else {
		o.DestLat, o.DestLng = &lat, &lng
	}
}
