package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdemComLinha é a projeção da listagem: a ordem com o nome da linha e a idade
// em horas, calculada no banco.
type OrdemComLinha struct {
	model.Ordem
	LinhaNome         string  `gorm:"column:linha_nome"`
	HorasDesdeCriacao float64 `gorm:"column:horas_desde_criacao"`
}

type OrdemRepository interface {
	// Transaction executa fn dentro de uma transação; fn recebe o tx a ser
	// repassado aos métodos *Tx dos repositórios envolvidos.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	List(ctx context.Context) ([]OrdemComLinha, error)
	FindComLinha(ctx context.Context, id uuid.UUID) (*OrdemComLinha, error)
	Create(ctx context.Context, tx *gorm.DB, o *model.Ordem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ordem, error)
	Save(ctx context.Context, o *model.Ordem) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ProximoCodigo gera o próximo código OP-YYYYMMDD-NNN do dia. Deve ser
	// chamado dentro da transação de criação: serializa criações concorrentes
	// do mesmo dia com um advisory lock por prefixo.
	ProximoCodigo(ctx context.Context, tx *gorm.DB, dia time.Time) (string, error)
}

type ordemRepo struct{ db *gorm.DB }

func NewOrdemRepository(db *gorm.DB) OrdemRepository { return &ordemRepo{db: db} }

func (r *ordemRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ordemRepo) List(ctx context.Context) ([]OrdemComLinha, error) {
	var rows []OrdemComLinha
	err := r.db.WithContext(ctx).
		Model(&model.Ordem{}).
		Select("ordem_producao.*, l.nome AS linha_nome, EXTRACT(EPOCH FROM (NOW() - ordem_producao.data_criacao))/3600 AS horas_desde_criacao").
		Joins("JOIN linha_producao l ON ordem_producao.linha_producao_id = l.id").
		Order("ordem_producao.data_criacao DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ordemRepo) FindComLinha(ctx context.Context, id uuid.UUID) (*OrdemComLinha, error) {
	var row OrdemComLinha
	err := r.db.WithContext(ctx).
		Model(&model.Ordem{}).
		Select("ordem_producao.*, l.nome AS linha_nome, EXTRACT(EPOCH FROM (NOW() - ordem_producao.data_criacao))/3600 AS horas_desde_criacao").
		Joins("JOIN linha_producao l ON ordem_producao.linha_producao_id = l.id").
		Where("ordem_producao.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ordemRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Ordem) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *ordemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ordem, error) {
	var o model.Ordem
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *ordemRepo) Save(ctx context.Context, o *model.Ordem) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ordemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Ordem{}, "id = ?", id).Error
}

func (r *ordemRepo) ProximoCodigo(ctx context.Context, tx *gorm.DB, dia time.Time) (string, error) {
	prefixo := "OP-" + dia.Format("20060102")

	// Serializa a geração do código dentro do dia: dois BEGINs concorrentes com
	// o mesmo prefixo enfileiram aqui até o commit do primeiro. O índice único
	// em codigo é o backstop.
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefixo).Error; err != nil {
		return "", err
	}

	var ultimo int
	err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(codigo FROM ?) AS INTEGER)), 0)
		FROM ordem_producao
		WHERE codigo LIKE ?`,
		prefixo+`-(\d+)`, prefixo+"-%",
	).Scan(&ultimo).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", prefixo, ultimo+1), nil
}
