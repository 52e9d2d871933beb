package model

import "github.com/google/uuid"

// PosicaoLinha indica onde na linha ocorreu uma pesagem. Dados de referência,
// semeados por administração.
type PosicaoLinha struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descricao string    `gorm:"not null"`
}

func (PosicaoLinha) TableName() string { return "posicao_linha" }

// Operador é o cadastro de funcionário sincronizado do ERP. Somente leitura
// para este núcleo.
type Operador struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null;index"`
	Matricula string    `gorm:"uniqueIndex;not null"`
}

func (Operador) TableName() string { return "operadores" }
