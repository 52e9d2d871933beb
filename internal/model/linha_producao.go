package model

import (
	"time"

	"github.com/google/uuid"
)

// LinhaProducao é uma linha física de processamento à qual as ordens são atribuídas.
// NumSubetapas é um contador desnormalizado mantido pelo SubetapaService; é um
// cache de melhor esforço, nunca a fonte de verdade para contagem de etapas.
type LinhaProducao struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string    `gorm:"not null;index"`
	Ativa        bool      `gorm:"not null;default:true"`
	NumSubetapas int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default pluralization.
func (LinhaProducao) TableName() string { return "linha_producao" }
