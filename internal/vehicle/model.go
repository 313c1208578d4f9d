package vehicle

import "time"

// Status de disponibilidade de um veículo da frota.
type Status string

const (
	StatusDisponivel Status = "disponivel"
	StatusEmUso      Status = "em_uso"
	StatusManutencao Status = "manutencao"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDisponivel, StatusEmUso, StatusManutencao:
		return true
	}
	return false
}

// Tipo de equipamento do veículo de socorro.
type Tipo string

const (
	TipoGuincho    Tipo = "guincho"
	TipoReboque    Tipo = "reboque"
	TipoPlataforma Tipo = "plataforma"
)

func ValidTipo(t Tipo) bool {
	switch t {
	case TipoGuincho, TipoReboque, TipoPlataforma:
		return true
	}
	return false
}

// Vehicle é um veículo da frota da empresa (não o veículo do cliente
// atendido, que vive na ordem de serviço).
type Vehicle struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Make      string    `gorm:"column:marca;type:varchar(60);not null" json:"marca"`
	Model     string    `gorm:"column:modelo;type:varchar(60);not null" json:"modelo"`
	Plate     string    `gorm:"column:placa;type:varchar(8);uniqueIndex;not null" json:"placa"`
	Year      int       `gorm:"column:ano;not null" json:"ano"`
	Tipo      Tipo      `gorm:"column:tipo;type:varchar(16);not null" json:"tipo"`
	Capacity  float64   `gorm:"column:capacidade_toneladas;not null" json:"capacidade_toneladas"`
	Status    Status    `gorm:"column:status;type:varchar(16);default:disponivel" json:"status"`
	PhotoURL  string    `gorm:"column:foto_url;type:varchar(500)" json:"foto_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "veiculos"
}
