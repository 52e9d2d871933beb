package repository

import (
	"context"

	"github.com/email-do-dev/prodata/internal/model"

	"gorm.io/gorm"
)

// ReferenciaRepository serve os cadastros somente-leitura: posições de linha e
// operadores sincronizados do ERP.
type ReferenciaRepository interface {
	ListPosicoes(ctx context.Context) ([]model.PosicaoLinha, error)
	ListOperadores(ctx context.Context) ([]model.Operador, error)
}

type referenciaRepo struct{ db *gorm.DB }

func NewReferenciaRepository(db *gorm.DB) ReferenciaRepository { return &referenciaRepo{db: db} }

func (r *referenciaRepo) ListPosicoes(ctx context.Context) ([]model.PosicaoLinha, error) {
	var posicoes []model.PosicaoLinha
	err := r.db.WithContext(ctx).Order("descricao ASC").Find(&posicoes).Error
	return posicoes, err
}

func (r *referenciaRepo) ListOperadores(ctx context.Context) ([]model.Operador, error) {
	var operadores []model.Operador
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&operadores).Error
	return operadores, err
}
