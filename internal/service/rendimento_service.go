package service

import (
	"context"
	"errors"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cem = decimal.NewFromInt(100)

type RendimentoService interface {
	Calcular(ctx context.Context, ordemID uuid.UUID) ([]dto.RendimentoEtapaResponse, error)
}

type rendimentoService struct {
	subetapas repository.SubetapaRepository
	ordens    repository.OrdemRepository
}

func NewRendimentoService(subetapas repository.SubetapaRepository, ordens repository.OrdemRepository) RendimentoService {
	return &rendimentoService{subetapas: subetapas, ordens: ordens}
}

func (s *rendimentoService) Calcular(ctx context.Context, ordemID uuid.UUID) ([]dto.RendimentoEtapaResponse, error) {
	if _, err := s.ordens.FindByID(ctx, ordemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ordem não encontrada")
		}
		return nil, err
	}

	etapas, err := s.subetapas.PesosPorEtapaAtiva(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	return CalcularRendimentos(etapas), nil
}

// CalcularRendimentos deriva os percentuais de rendimento de uma sequência de
// etapas ativas já ordenada por numero_etapa. O rendimento de etapa compara
// cada total com o da etapa anterior; o rendimento geral compara com a
// primeira etapa da sequência. Percentual indefinido (denominador zero ou
// primeira etapa) sai como nil, nunca como zero.
func CalcularRendimentos(etapas []repository.PesoPorEtapa) []dto.RendimentoEtapaResponse {
	resp := make([]dto.RendimentoEtapaResponse, 0, len(etapas))
	if len(etapas) == 0 {
		return resp
	}

	base := etapas[0].PesoTotal
	for i := range etapas {
		linha := dto.RendimentoEtapaResponse{
			NumeroEtapa: etapas[i].NumeroEtapa,
			Descricao:   etapas[i].Descricao,
			ItemCodigo:  etapas[i].ItemCodigo,
			PesoTotal:   etapas[i].PesoTotal,
		}
		if i == 0 {
			if !base.IsZero() {
				geral := cem.Round(2)
				linha.RendimentoGeral = &geral
			}
		} else {
			anterior := etapas[i-1].PesoTotal
			linha.PesoAnterior = &anterior
			if !anterior.IsZero() {
				etapa := etapas[i].PesoTotal.Div(anterior).Mul(cem).Round(2)
				linha.RendimentoEtapa = &etapa
			}
			if !base.IsZero() {
				geral := etapas[i].PesoTotal.Div(base).Mul(cem).Round(2)
				linha.RendimentoGeral = &geral
			}
		}
		resp = append(resp, linha)
	}
	return resp
}
