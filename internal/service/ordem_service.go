package service

import (
	"context"
	"errors"
	"time"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrdemService interface {
	Listar(ctx context.Context) ([]dto.OrdemResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.OrdemResponse, error)
	Criar(ctx context.Context, req dto.CriarOrdemRequest) (*dto.OrdemCriadaResponse, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*model.Ordem, error)
	// Deletar remove uma ordem ainda ABERTA e devolve o código liberado.
	Deletar(ctx context.Context, id uuid.UUID) (string, error)
}

type ordemService struct {
	ordens    repository.OrdemRepository
	subetapas repository.SubetapaRepository
	agora     func() time.Time
}

func NewOrdemService(ordens repository.OrdemRepository, subetapas repository.SubetapaRepository) OrdemService {
	return &ordemService{ordens: ordens, subetapas: subetapas, agora: time.Now}
}

func (s *ordemService) Listar(ctx context.Context) ([]dto.OrdemResponse, error) {
	rows, err := s.ordens.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrdemResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toOrdemResponse(&rows[i]))
	}
	return resp, nil
}

func (s *ordemService) Buscar(ctx context.Context, id uuid.UUID) (*dto.OrdemResponse, error) {
	row, err := s.ordens.FindComLinha(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ordem não encontrada")
		}
		return nil, err
	}
	resp := toOrdemResponse(row)
	return &resp, nil
}

// ── Criar ─────────────────────────────────────────────────────────────────────
// Ordem + subetapas 1 e 99 nascem na mesma transação; qualquer falha desfaz
// tudo. O código do dia é serializado pelo advisory lock em ProximoCodigo.

func (s *ordemService) Criar(ctx context.Context, req dto.CriarOrdemRequest) (*dto.OrdemCriadaResponse, error) {
	if req.LinhaProducaoID == "" || req.ItemEntrada == "" || req.ItemSaida == "" {
		return nil, apierror.Validation("Campos obrigatórios: linha_producao_id, item_entrada, item_saida")
	}
	linhaID, err := uuid.Parse(req.LinhaProducaoID)
	if err != nil {
		return nil, apierror.Validation("linha_producao_id inválido")
	}

	var resp *dto.OrdemCriadaResponse
	err = s.ordens.Transaction(ctx, func(tx *gorm.DB) error {
		codigo, err := s.ordens.ProximoCodigo(ctx, tx, s.agora())
		if err != nil {
			return err
		}

		ordem := &model.Ordem{
			Codigo:            codigo,
			LinhaProducaoID:   linhaID,
			ItemEntrada:       req.ItemEntrada,
			ItemSaida:         req.ItemSaida,
			QuantidadeInicial: req.QuantidadeInicial,
			Observacoes:       req.Observacoes,
			Status:            model.StatusAberta,
		}
		if err := s.ordens.Create(ctx, tx, ordem); err != nil {
			return err
		}

		// Etapas de fronteira do processo: ambas inativas até o operador agir.
		seeds := []model.Subetapa{
			{
				OrdemProducaoID: ordem.ID,
				NumeroEtapa:     model.NumeroEntrada,
				Descricao:       "Entrada do Processo",
				ItemCodigo:      req.ItemEntrada,
				CriadoPor:       model.CriadorSistema,
			},
			{
				OrdemProducaoID: ordem.ID,
				NumeroEtapa:     model.NumeroSaida,
				Descricao:       "Saída do Processo",
				ItemCodigo:      req.ItemSaida,
				CriadoPor:       model.CriadorSistema,
			},
		}
		for i := range seeds {
			if err := s.subetapas.Create(ctx, tx, &seeds[i]); err != nil {
				return err
			}
		}

		resp = &dto.OrdemCriadaResponse{ID: ordem.ID.String(), Codigo: codigo}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Internal("Erro interno - código duplicado")
		}
		log.Error().Err(err).Msg("criar ordem: transação falhou")
		return nil, err
	}

	log.Info().Str("codigo", resp.Codigo).Msg("ordem criada")
	return resp, nil
}

func (s *ordemService) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*model.Ordem, error) {
	if !model.StatusValido(status) {
		return nil, apierror.Validation("Status deve ser: ABERTA, EM_ANDAMENTO, FECHADA, CANCELADA")
	}

	ordem, err := s.ordens.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ordem não encontrada")
		}
		return nil, err
	}

	ordem.Status = status
	if status == model.StatusFechada || status == model.StatusCancelada {
		fim := s.agora()
		ordem.DataFim = &fim
	}
	if err := s.ordens.Save(ctx, ordem); err != nil {
		return nil, err
	}
	return ordem, nil
}

func (s *ordemService) Deletar(ctx context.Context, id uuid.UUID) (string, error) {
	ordem, err := s.ordens.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierror.NotFound("Ordem não encontrada")
		}
		return "", err
	}
	if ordem.Status != model.StatusAberta {
		return "", apierror.InvalidState("Só é possível deletar ordens com status ABERTA")
	}
	if err := s.ordens.Delete(ctx, id); err != nil {
		return "", err
	}
	log.Info().Str("codigo", ordem.Codigo).Msg("ordem deletada")
	return ordem.Codigo, nil
}

func toOrdemResponse(row *repository.OrdemComLinha) dto.OrdemResponse {
	return dto.OrdemResponse{
		ID:                row.ID.String(),
		Codigo:            row.Codigo,
		LinhaProducaoID:   row.LinhaProducaoID.String(),
		LinhaNome:         row.LinhaNome,
		ItemEntrada:       row.ItemEntrada,
		ItemSaida:         row.ItemSaida,
		QuantidadeInicial: row.QuantidadeInicial,
		Observacoes:       row.Observacoes,
		Status:            row.Status,
		DataCriacao:       row.DataCriacao,
		DataFim:           row.DataFim,
		HorasDesdeCriacao: row.HorasDesdeCriacao,
	}
}
