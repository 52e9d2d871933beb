package repository

import (
	"context"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LinhaRepository interface {
	ListAtivas(ctx context.Context) ([]model.LinhaProducao, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.LinhaProducao, error)
	// IncrementSubetapas ajusta o contador desnormalizado num_subetapas.
	// Decrementos nunca levam o contador abaixo de zero. O contador é cache de
	// melhor esforço; contagens autoritativas saem da tabela subetapa.
	IncrementSubetapas(ctx context.Context, id uuid.UUID, delta int) error
}

type linhaRepo struct{ db *gorm.DB }

func NewLinhaRepository(db *gorm.DB) LinhaRepository { return &linhaRepo{db: db} }

func (r *linhaRepo) ListAtivas(ctx context.Context) ([]model.LinhaProducao, error) {
	var linhas []model.LinhaProducao
	err := r.db.WithContext(ctx).Where("ativa = true").Order("nome").Find(&linhas).Error
	return linhas, err
}

func (r *linhaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LinhaProducao, error) {
	var l model.LinhaProducao
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *linhaRepo) IncrementSubetapas(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.LinhaProducao{}).
		Where("id = ?", id).
		Update("num_subetapas", gorm.Expr("GREATEST(num_subetapas + ?, 0)", delta)).Error
}
