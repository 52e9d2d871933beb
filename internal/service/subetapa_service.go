package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notificador recebe o aviso de ordem fechada. Implementado pelo dispatcher do
// worker pool; nil desliga a notificação (testes, ambientes sem SMTP).
type Notificador interface {
	NotificarOrdemFechada(ctx context.Context, ordem *model.Ordem)
}

type SubetapaService interface {
	Listar(ctx context.Context, ordemID uuid.UUID) ([]dto.SubetapaResponse, error)
	Criar(ctx context.Context, ordemID uuid.UUID, req dto.CriarSubetapaRequest) (*dto.SubetapaResponse, error)
	Ativar(ctx context.Context, id uuid.UUID, ativa bool, data *time.Time) (*dto.SubetapaResponse, error)
	Concluir(ctx context.Context, id uuid.UUID, ativa bool, data *time.Time) (*dto.SubetapaResponse, error)
	Deletar(ctx context.Context, id uuid.UUID) (*dto.SubetapaResponse, error)
}

type subetapaService struct {
	subetapas   repository.SubetapaRepository
	ordens      repository.OrdemRepository
	linhas      repository.LinhaRepository
	pesos       repository.PesoRepository
	notificador Notificador
	agora       func() time.Time
}

func NewSubetapaService(
	subetapas repository.SubetapaRepository,
	ordens repository.OrdemRepository,
	linhas repository.LinhaRepository,
	pesos repository.PesoRepository,
	notificador Notificador,
) SubetapaService {
	return &subetapaService{
		subetapas:   subetapas,
		ordens:      ordens,
		linhas:      linhas,
		pesos:       pesos,
		notificador: notificador,
		agora:       time.Now,
	}
}

func (s *subetapaService) Listar(ctx context.Context, ordemID uuid.UUID) ([]dto.SubetapaResponse, error) {
	rows, err := s.subetapas.ListByOrdem(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SubetapaResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toSubetapaResponse(&rows[i]))
	}
	return resp, nil
}

// ── Criar ─────────────────────────────────────────────────────────────────────
// O número é sempre max(existentes, exceto 99) + 1, de modo que a etapa de
// saída permanece o marcador terminal por mais etapas intermediárias que o
// operador crie. Criação por humano ativa a etapa na hora; criação pelo
// sistema a deixa aguardando ativação.

func (s *subetapaService) Criar(ctx context.Context, ordemID uuid.UUID, req dto.CriarSubetapaRequest) (*dto.SubetapaResponse, error) {
	if req.ItemCodigo == "" {
		return nil, apierror.Validation("Campo obrigatório: item_codigo")
	}

	ordem, err := s.ordens.FindByID(ctx, ordemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ordem não encontrada")
		}
		return nil, err
	}

	max, err := s.subetapas.MaxNumeroIntermediario(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	numero := max + 1

	descricao := req.Descricao
	if descricao == "" {
		descricao = fmt.Sprintf("Etapa %d", numero)
	}

	criador := req.CriadoPor
	sistema := criador == "" || strings.EqualFold(criador, model.CriadorSistema)
	if criador == "" {
		criador = model.CriadorSistema
	}

	sub := &model.Subetapa{
		OrdemProducaoID: ordemID,
		NumeroEtapa:     numero,
		Descricao:       descricao,
		ItemCodigo:      req.ItemCodigo,
		CriadoPor:       criador,
		Ativa:           !sistema,
	}
	if sub.Ativa {
		ts := s.agora()
		sub.DataAtivacao = &ts
	}

	if err := s.subetapas.Create(ctx, nil, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Etapa já existe para esta ordem")
		}
		return nil, err
	}

	// Contador desnormalizado da linha: melhor esforço, não autoritativo.
	if err := s.linhas.IncrementSubetapas(ctx, ordem.LinhaProducaoID, 1); err != nil {
		log.Warn().Err(err).Str("linha", ordem.LinhaProducaoID.String()).Msg("falha ao incrementar contador de subetapas")
	}

	return toSubetapaBasica(sub), nil
}

func (s *subetapaService) Ativar(ctx context.Context, id uuid.UUID, ativa bool, data *time.Time) (*dto.SubetapaResponse, error) {
	sub, err := s.findSubetapa(ctx, id)
	if err != nil {
		return nil, err
	}

	ts := s.agora()
	if data != nil {
		ts = *data
	}
	sub.Ativa = ativa
	sub.DataAtivacao = &ts
	if err := s.subetapas.Save(ctx, sub); err != nil {
		return nil, err
	}

	if novo, ok := AvaliarTransicao(EventoAtivacao, sub, 0); ok {
		if err := s.aplicarTransicao(ctx, sub.OrdemProducaoID, novo); err != nil {
			return nil, err
		}
	}
	return toSubetapaBasica(sub), nil
}

func (s *subetapaService) Concluir(ctx context.Context, id uuid.UUID, ativa bool, data *time.Time) (*dto.SubetapaResponse, error) {
	sub, err := s.findSubetapa(ctx, id)
	if err != nil {
		return nil, err
	}

	ts := s.agora()
	if data != nil {
		ts = *data
	}
	sub.Ativa = ativa
	sub.DataConclusao = &ts
	if err := s.subetapas.Save(ctx, sub); err != nil {
		return nil, err
	}

	ativas, err := s.subetapas.CountAtivas(ctx, sub.OrdemProducaoID)
	if err != nil {
		return nil, err
	}
	if novo, ok := AvaliarTransicao(EventoConclusao, sub, ativas); ok {
		if err := s.aplicarTransicao(ctx, sub.OrdemProducaoID, novo); err != nil {
			return nil, err
		}
	}
	return toSubetapaBasica(sub), nil
}

func (s *subetapaService) Deletar(ctx context.Context, id uuid.UUID) (*dto.SubetapaResponse, error) {
	sub, err := s.findSubetapa(ctx, id)
	if err != nil {
		return nil, err
	}

	registros, err := s.pesos.CountBySubetapa(ctx, id)
	if err != nil {
		return nil, err
	}
	if registros > 0 {
		return nil, apierror.Conflict("Não é possível deletar a subetapa pois existem registros de peso vinculados")
	}

	if err := s.subetapas.Delete(ctx, id); err != nil {
		return nil, err
	}

	if ordem, err := s.ordens.FindByID(ctx, sub.OrdemProducaoID); err == nil {
		if err := s.linhas.IncrementSubetapas(ctx, ordem.LinhaProducaoID, -1); err != nil {
			log.Warn().Err(err).Msg("falha ao decrementar contador de subetapas")
		}
	}
	return toSubetapaBasica(sub), nil
}

// aplicarTransicao grava a transição decidida pela máquina de estados. É
// idempotente: reativar a etapa 1 de uma ordem já EM_ANDAMENTO não erra nem
// regride o status.
func (s *subetapaService) aplicarTransicao(ctx context.Context, ordemID uuid.UUID, novo string) error {
	ordem, err := s.ordens.FindByID(ctx, ordemID)
	if err != nil {
		return err
	}
	if ordem.Status == novo {
		return nil
	}

	ordem.Status = novo
	if novo == model.StatusFechada {
		fim := s.agora()
		ordem.DataFim = &fim
	}
	if err := s.ordens.Save(ctx, ordem); err != nil {
		return err
	}

	log.Info().Str("codigo", ordem.Codigo).Str("status", novo).Msg("transição automática de ordem")
	if novo == model.StatusFechada && s.notificador != nil {
		s.notificador.NotificarOrdemFechada(ctx, ordem)
	}
	return nil
}

func (s *subetapaService) findSubetapa(ctx context.Context, id uuid.UUID) (*model.Subetapa, error) {
	sub, err := s.subetapas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Subetapa não encontrada")
		}
		return nil, err
	}
	return sub, nil
}

func toSubetapaResponse(row *repository.SubetapaComAgregados) dto.SubetapaResponse {
	return dto.SubetapaResponse{
		ID:              row.ID.String(),
		OrdemProducaoID: row.OrdemProducaoID.String(),
		NumeroEtapa:     row.NumeroEtapa,
		Papel:           row.Papel().String(),
		Descricao:       row.Descricao,
		ItemCodigo:      row.ItemCodigo,
		CriadoPor:       row.CriadoPor,
		Ativa:           row.Ativa,
		DataCriacao:     row.DataCriacao,
		DataAtivacao:    row.DataAtivacao,
		DataConclusao:   row.DataConclusao,
		PesoTotal:       row.PesoTotal,
		TotalRegistros:  row.TotalRegistros,
		UltimoPeso:      row.UltimoPeso,
	}
}

// toSubetapaBasica serve as mutações, que respondem sem os agregados de peso.
func toSubetapaBasica(sub *model.Subetapa) *dto.SubetapaResponse {
	return &dto.SubetapaResponse{
		ID:              sub.ID.String(),
		OrdemProducaoID: sub.OrdemProducaoID.String(),
		NumeroEtapa:     sub.NumeroEtapa,
		Papel:           sub.Papel().String(),
		Descricao:       sub.Descricao,
		ItemCodigo:      sub.ItemCodigo,
		CriadoPor:       sub.CriadoPor,
		Ativa:           sub.Ativa,
		DataCriacao:     sub.DataCriacao,
		DataAtivacao:    sub.DataAtivacao,
		DataConclusao:   sub.DataConclusao,
	}
}
