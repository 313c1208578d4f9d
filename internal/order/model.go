package order

import "time"

// Status estado da ordem de serviço (persistido como string, nos mesmos
// valores exibidos pelo painel).
type Status string

const (
	StatusAguardando  Status = "aguardando"   // criada, aguardando despacho
	StatusEmAndamento Status = "em_andamento" // guincho a caminho / serviço em execução
	StatusConcluido   Status = "concluido"    // finalizada
	StatusCancelado   Status = "cancelado"    // cancelada (soft delete)
)

// ValidStatus informa se s é um dos quatro estados conhecidos.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAguardando, StatusEmAndamento, StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

// Order modelo GORM da tabela ordens_servico.
//
// Os campos veiculo_cliente_* são um retrato do veículo do cliente no momento
// da abertura da ordem, não uma referência à frota.
type Order struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Number string `gorm:"column:numero_ordem;uniqueIndex;size:20;not null" json:"numero_ordem"`

	ClientID string `gorm:"column:cliente_id;index;size:36" json:"cliente_id,omitempty"`

	VehicleMake  string `gorm:"column:veiculo_cliente_marca;size:64;not null" json:"veiculo_cliente_marca"`
	VehicleModel string `gorm:"column:veiculo_cliente_modelo;size:64;not null" json:"veiculo_cliente_modelo"`
	VehiclePlate string `gorm:"column:veiculo_cliente_placa;index;size:8;not null" json:"veiculo_cliente_placa"`
	VehicleYear  int    `gorm:"column:veiculo_cliente_ano;not null" json:"veiculo_cliente_ano"`

	OriginAddress string   `gorm:"column:origem_endereco;size:255;not null" json:"origem_endereco"`
	OriginLat     *float64 `gorm:"column:origem_lat" json:"origem_lat,omitempty"`
	OriginLng     *float64 `gorm:"column:origem_lng" json:"origem_lng,omitempty"`
	DestAddress   string   `gorm:"column:destino_endereco;size:255;not null" json:"destino_endereco"`
	DestLat       *float64 `gorm:"column:destino_lat" json:"destino_lat,omitempty"`
	DestLng       *float64 `gorm:"column:destino_lng" json:"destino_lng,omitempty"`

	DistanceKm   *float64 `gorm:"column:distancia_km" json:"distancia_km,omitempty"`
	ServiceValue *float64 `gorm:"column:valor_servico" json:"valor_servico,omitempty"`

	Status Status `gorm:"type:varchar(16);index;not null" json:"status"`
	Notes  string `gorm:"column:observacoes;size:1024" json:"observacoes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName mantém o nome da tabela usado pelo painel.
func (Order) TableName() string { return "ordens_servico" }
