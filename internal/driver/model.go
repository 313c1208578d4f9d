package driver

import "time"

// Status operacional de um motorista.
type Status string

const (
	StatusAtivo    Status = "ativo"
	StatusInativo  Status = "inativo"
	StatusEmViagem Status = "em_viagem"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAtivo, StatusInativo, StatusEmViagem:
		return true
	}
	return false
}

// Driver é um motorista cadastrado pela empresa.
type Driver struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;type:varchar(120);not null" json:"nome"`
	Phone     string    `gorm:"column:telefone;type:varchar(20);not null" json:"telefone"`
	CPF       string    `gorm:"column:cpf;type:varchar(11);uniqueIndex;not null" json:"cpf"`
	CNH       string    `gorm:"column:cnh;type:varchar(15);not null" json:"cnh"`
	Status    Status    `gorm:"column:status;type:varchar(12);default:ativo" json:"status"`
	PhotoURL  string    `gorm:"column:foto_url;type:varchar(500)" json:"foto_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "motoristas"
}

// TripStatus estado de uma viagem.
type TripStatus string

const (
	TripEmAndamento TripStatus = "em_andamento"
	TripConcluida   TripStatus = "concluida"
	TripCancelada   TripStatus = "cancelada"
)

// Trip é uma viagem realizada por um motorista.
type Trip struct {
	ID         string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	DriverID   string     `gorm:"column:motorista_id;type:varchar(36);index;not null" json:"motorista_id"`
	Origin     string     `gorm:"column:origem;type:varchar(500);not null" json:"origem"`
	Dest       string     `gorm:"column:destino;type:varchar(500);not null" json:"destino"`
	Status     TripStatus `gorm:"column:status;type:varchar(16);default:em_andamento" json:"status"`
	StartedAt  time.Time  `gorm:"column:data_inicio;not null" json:"data_inicio"`
	FinishedAt *time.Time `gorm:"column:data_fim" json:"data_fim,omitempty"`
	DistanceKm *float64   `gorm:"column:distancia_km" json:"distancia_km,omitempty"`
	Value      *float64   `gorm:"column:valor" json:"valor,omitempty"`
}

func (Trip) TableName() string {
	return "viagens"
}
