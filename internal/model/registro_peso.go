package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estações e tipo de medida padrão de um registro de peso.
const (
	EstacaoWeb       = "WEB"
	EstacaoTablet    = "TABLET"
	TipoMedidaPadrao = "KG"
)

// RegistroPeso é uma medição de peso submetida por um operador em uma subetapa.
// Registros são imutáveis exceto pela correção do valor do peso (que renova
// data_registro) e pela exclusão.
type RegistroPeso struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubetapaID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Operador           string          `gorm:"not null"` // sempre armazenado em maiúsculas
	PesoKg             decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	QuantidadeUnidades *int
	TipoMedida         string `gorm:"type:varchar(10);not null;default:'KG'"`
	Observacoes        string
	Estacao            string     `gorm:"type:varchar(10);not null;default:'WEB'"`
	PosicaoID          *uuid.UUID `gorm:"type:uuid"`
	DataRegistro       time.Time  `gorm:"autoCreateTime"`

	Subetapa *Subetapa     `gorm:"foreignKey:SubetapaID"`
	Posicao  *PosicaoLinha `gorm:"foreignKey:PosicaoID"`
}

func (RegistroPeso) TableName() string { return "registro_peso" }
