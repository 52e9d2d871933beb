package repository

import (
	"context"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PesoComContexto é um registro de peso com o contexto de subetapa e ordem.
type PesoComContexto struct {
	model.RegistroPeso
	NumeroEtapa    int    `gorm:"column:numero_etapa"`
	ItemCodigo     string `gorm:"column:item_codigo"`
	EtapaDescricao string `gorm:"column:etapa_descricao"`
	OrdemCodigo    string `gorm:"column:ordem_codigo"`
}

type PesoRepository interface {
	ListBySubetapa(ctx context.Context, subetapaID uuid.UUID) ([]PesoComContexto, error)
	Create(ctx context.Context, p *model.RegistroPeso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RegistroPeso, error)
	Save(ctx context.Context, p *model.RegistroPeso) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySubetapa(ctx context.Context, subetapaID uuid.UUID) (int64, error)
}

type pesoRepo struct{ db *gorm.DB }

func NewPesoRepository(db *gorm.DB) PesoRepository { return &pesoRepo{db: db} }

func (r *pesoRepo) ListBySubetapa(ctx context.Context, subetapaID uuid.UUID) ([]PesoComContexto, error) {
	var rows []PesoComContexto
	err := r.db.WithContext(ctx).
		Model(&model.RegistroPeso{}).
		Select("registro_peso.*, s.numero_etapa, s.item_codigo, s.descricao AS etapa_descricao, o.codigo AS ordem_codigo").
		Joins("JOIN subetapa s ON registro_peso.subetapa_id = s.id").
		Joins("JOIN ordem_producao o ON s.ordem_producao_id = o.id").
		Where("registro_peso.subetapa_id = ?", subetapaID).
		Order("registro_peso.data_registro DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *pesoRepo) Create(ctx context.Context, p *model.RegistroPeso) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pesoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RegistroPeso, error) {
	var p model.RegistroPeso
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pesoRepo) Save(ctx context.Context, p *model.RegistroPeso) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pesoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RegistroPeso{}, "id = ?", id).Error
}

func (r *pesoRepo) CountBySubetapa(ctx context.Context, subetapaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.RegistroPeso{}).
		Where("subetapa_id = ?", subetapaID).
		Count(&n).Error
	return n, err
}
