package order

import (
	"strings"
	"time"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/brdoc"
	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/apperr"
)

const minVehicleYear = 1900

// validateCreate aplica todas as regras de campo de uma vez e devolve o
// conjunto completo de falhas, nunca só a primeira.
func validateCreate(in CreateOrderInput, now time.Time) *apperr.ValidationError {
	ve := apperr.NewValidationError()

	if strings.TrimSpace(in.VehicleMake) == "" {
		ve.Add("veiculo_cliente_marca", "Marca é obrigatória")
	}
	if strings.TrimSpace(in.VehicleModel) == "" {
		ve.Add("veiculo_cliente_modelo", "Modelo é obrigatório")
	}
	validatePlate(ve, in.VehiclePlate)
	validateYear(ve, in.VehicleYear, now)
	if strings.TrimSpace(in.OriginAddress) == "" {
		ve.Add("origem_endereco", "Endereço de origem é obrigatório")
	}
	if strings.TrimSpace(in.DestAddress) == "" {
		ve.Add("destino_endereco", "Endereço de destino é obrigatório")
	}

	return ve
}

// validateUpdate só valida os campos presentes no patch.
func validateUpdate(in UpdateOrderInput, now time.Time) *apperr.ValidationError {
	ve := apperr.NewValidationError()

	if in.VehicleMake != nil && strings.TrimSpace(*in.VehicleMake) == "" {
		ve.Add("veiculo_cliente_marca", "Marca é obrigatória")
	}
	if in.VehicleModel != nil && strings.TrimSpace(*in.VehicleModel) == "" {
		ve.Add("veiculo_cliente_modelo", "Modelo é obrigatório")
	}
	if in.VehiclePlate != nil {
		validatePlate(ve, *in.VehiclePlate)
	}
	if in.VehicleYear != nil {
		validateYear(ve, *in.VehicleYear, now)
	}
	if in.OriginAddress != nil && strings.TrimSpace(*in.OriginAddress) == "" {
		ve.Add("origem_endereco", "Endereço de origem é obrigatório")
	}
	if in.DestAddress != nil && strings.TrimSpace(*in.DestAddress) == "" {
		ve.Add("destino_endereco", "Endereço de destino é obrigatório")
	}
	if in.Status != nil && !ValidStatus(*in.Status) {
		ve.Add("status", "Status desconhecido")
	}

	return ve
}

func validatePlate(ve *apperr.ValidationError, plate string) {
	if strings.TrimSpace(plate) == "" {
		ve.Add("veiculo_cliente_placa", "Placa é obrigatória")
		return
	}
	if !brdoc.ValidPlate(plate) {
		ve.Add("veiculo_cliente_placa", "Placa inválida (ABC-1234 ou ABC1D23)")
	}
}

func validateYear(ve *apperr.ValidationError, year int, now time.Time) {
	if year < minVehicleYear || year > now.Year()+1 {
		ve.Add("veiculo_cliente_ano", "Ano inválido")
	}
}
