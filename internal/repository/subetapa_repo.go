package repository

import (
	"context"
	"time"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubetapaComAgregados é a subetapa com os agregados vivos do livro de pesos,
// sempre calculados na leitura.
type SubetapaComAgregados struct {
	model.Subetapa
	PesoTotal      decimal.Decimal `gorm:"column:peso_total"`
	TotalRegistros int64           `gorm:"column:total_registros"`
	UltimoPeso     *time.Time      `gorm:"column:ultimo_peso"`
}

// PesoPorEtapa é a projeção mínima para o cálculo de rendimento: o total
// registrado por subetapa ativa, em ordem de numero_etapa.
type PesoPorEtapa struct {
	NumeroEtapa int             `gorm:"column:numero_etapa"`
	Descricao   string          `gorm:"column:descricao"`
	ItemCodigo  string          `gorm:"column:item_codigo"`
	PesoTotal   decimal.Decimal `gorm:"column:peso_total"`
}

type SubetapaRepository interface {
	ListByOrdem(ctx context.Context, ordemID uuid.UUID) ([]SubetapaComAgregados, error)
	Create(ctx context.Context, tx *gorm.DB, s *model.Subetapa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Subetapa, error)
	Save(ctx context.Context, s *model.Subetapa) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MaxNumeroIntermediario devolve o maior numero_etapa da ordem excluindo a
	// 99, para que a saída permaneça o marcador terminal da sequência.
	MaxNumeroIntermediario(ctx context.Context, ordemID uuid.UUID) (int, error)
	CountAtivas(ctx context.Context, ordemID uuid.UUID) (int64, error)
	PesosPorEtapaAtiva(ctx context.Context, ordemID uuid.UUID) ([]PesoPorEtapa, error)
}

type subetapaRepo struct{ db *gorm.DB }

func NewSubetapaRepository(db *gorm.DB) SubetapaRepository { return &subetapaRepo{db: db} }

func (r *subetapaRepo) ListByOrdem(ctx context.Context, ordemID uuid.UUID) ([]SubetapaComAgregados, error) {
	var rows []SubetapaComAgregados
	err := r.db.WithContext(ctx).
		Model(&model.Subetapa{}).
		Select("subetapa.*, COALESCE(SUM(p.peso_kg), 0) AS peso_total, COUNT(p.id) AS total_registros, MAX(p.data_registro) AS ultimo_peso").
		Joins("LEFT JOIN registro_peso p ON p.subetapa_id = subetapa.id").
		Where("subetapa.ordem_producao_id = ?", ordemID).
		Group("subetapa.id").
		Order("subetapa.numero_etapa").
		Scan(&rows).Error
	return rows, err
}

func (r *subetapaRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Subetapa) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(s).Error
}

func (r *subetapaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Subetapa, error) {
	var s model.Subetapa
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *subetapaRepo) Save(ctx context.Context, s *model.Subetapa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subetapaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Subetapa{}, "id = ?", id).Error
}

func (r *subetapaRepo) MaxNumeroIntermediario(ctx context.Context, ordemID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.Subetapa{}).
		Select("COALESCE(MAX(numero_etapa), 0)").
		Where("ordem_producao_id = ? AND numero_etapa <> ?", ordemID, model.NumeroSaida).
		Scan(&max).Error
	return max, err
}

func (r *subetapaRepo) CountAtivas(ctx context.Context, ordemID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subetapa{}).
		Where("ordem_producao_id = ? AND ativa = true", ordemID).
		Count(&n).Error
	return n, err
}

func (r *subetapaRepo) PesosPorEtapaAtiva(ctx context.Context, ordemID uuid.UUID) ([]PesoPorEtapa, error) {
	var rows []PesoPorEtapa
	err := r.db.WithContext(ctx).
		Model(&model.Subetapa{}).
		Select("subetapa.numero_etapa, subetapa.descricao, subetapa.item_codigo, COALESCE(SUM(p.peso_kg), 0) AS peso_total").
		Joins("LEFT JOIN registro_peso p ON p.subetapa_id = subetapa.id").
		Where("subetapa.ordem_producao_id = ? AND subetapa.ativa = true", ordemID).
		Group("subetapa.id, subetapa.numero_etapa, subetapa.descricao, subetapa.item_codigo").
		Order("subetapa.numero_etapa").
		Scan(&rows).Error
	return rows, err
}
