package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de uma ordem de produção.
// ABERTA → EM_ANDAMENTO → FECHADA; CANCELADA é terminal a partir de qualquer
// estado não terminal. FECHADA e CANCELADA nunca são reabertas.
const (
	StatusAberta      = "ABERTA"
	StatusEmAndamento = "EM_ANDAMENTO"
	StatusFechada     = "FECHADA"
	StatusCancelada   = "CANCELADA"
)

// StatusValido reports whether s is one of the four order statuses.
func StatusValido(s string) bool {
	switch s {
	case StatusAberta, StatusEmAndamento, StatusFechada, StatusCancelada:
		return true
	}
	return false
}

// Ordem representa uma corrida de produção que converte um item de entrada em
// um item de saída. Codigo segue o formato OP-YYYYMMDD-NNN, sequencial por dia.
type Ordem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo            string          `gorm:"uniqueIndex;not null"`
	LinhaProducaoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemEntrada       string          `gorm:"not null"`
	ItemSaida         string          `gorm:"not null"`
	QuantidadeInicial decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Observacoes       string
	Status            string     `gorm:"type:varchar(20);not null;default:'ABERTA';index"`
	DataCriacao       time.Time  `gorm:"autoCreateTime"`
	DataFim           *time.Time

	Linha     *LinhaProducao `gorm:"foreignKey:LinhaProducaoID"`
	Subetapas []Subetapa     `gorm:"foreignKey:OrdemProducaoID"`
}

func (Ordem) TableName() string { return "ordem_producao" }
