package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PesoService interface {
	Listar(ctx context.Context, subetapaID uuid.UUID) ([]dto.PesoResponse, error)
	Registrar(ctx context.Context, subetapaID uuid.UUID, req dto.RegistrarPesoRequest) (*model.RegistroPeso, error)
	Editar(ctx context.Context, id uuid.UUID, req dto.EditarPesoRequest) (*model.RegistroPeso, error)
	Deletar(ctx context.Context, id uuid.UUID) (*model.RegistroPeso, error)
}

type pesoService struct {
	pesos     repository.PesoRepository
	subetapas repository.SubetapaRepository
	agora     func() time.Time
}

func NewPesoService(pesos repository.PesoRepository, subetapas repository.SubetapaRepository) PesoService {
	return &pesoService{pesos: pesos, subetapas: subetapas, agora: time.Now}
}

func (s *pesoService) Listar(ctx context.Context, subetapaID uuid.UUID) ([]dto.PesoResponse, error) {
	rows, err := s.pesos.ListBySubetapa(ctx, subetapaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PesoResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toPesoResponse(&rows[i]))
	}
	return resp, nil
}

// Registrar grava uma pesagem na subetapa. O operador é normalizado para
// maiúsculas e os campos de estação, medida e contagem recebem os padrões da
// bancada web quando omitidos.
func (s *pesoService) Registrar(ctx context.Context, subetapaID uuid.UUID, req dto.RegistrarPesoRequest) (*model.RegistroPeso, error) {
	if req.Operador == "" {
		return nil, apierror.Validation("Campos obrigatórios: operador, peso_kg")
	}
	if !req.PesoKg.IsPositive() {
		return nil, apierror.Validation("Peso deve ser maior que zero")
	}

	if _, err := s.subetapas.FindByID(ctx, subetapaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Subetapa não encontrada")
		}
		return nil, err
	}

	tipoMedida := req.TipoMedida
	if tipoMedida == "" {
		tipoMedida = model.TipoMedidaPadrao
	}
	estacao := req.Estacao
	if estacao == "" {
		estacao = model.EstacaoWeb
	}
	unidades := req.QuantidadeUnidades
	if unidades == nil {
		um := 1
		unidades = &um
	}

	var posicaoID *uuid.UUID
	if req.PosicaoID != nil && *req.PosicaoID != "" {
		id, err := uuid.Parse(*req.PosicaoID)
		if err != nil {
			return nil, apierror.Validation("posicao_id inválido")
		}
		posicaoID = &id
	}

	peso := &model.RegistroPeso{
		SubetapaID:         subetapaID,
		Operador:           strings.ToUpper(req.Operador),
		PesoKg:             req.PesoKg,
		QuantidadeUnidades: unidades,
		TipoMedida:         tipoMedida,
		Observacoes:        req.Observacoes,
		Estacao:            estacao,
		PosicaoID:          posicaoID,
	}
	if err := s.pesos.Create(ctx, peso); err != nil {
		return nil, err
	}
	return peso, nil
}

// Editar corrige o valor de uma pesagem. O data_registro é reposicionado para
// o momento da correção, de modo que o registro reflita a última intervenção.
func (s *pesoService) Editar(ctx context.Context, id uuid.UUID, req dto.EditarPesoRequest) (*model.RegistroPeso, error) {
	if !req.PesoKg.IsPositive() {
		return nil, apierror.Validation("Peso deve ser maior que zero")
	}

	peso, err := s.findPeso(ctx, id)
	if err != nil {
		return nil, err
	}

	peso.PesoKg = req.PesoKg
	peso.DataRegistro = s.agora()
	if err := s.pesos.Save(ctx, peso); err != nil {
		return nil, err
	}
	return peso, nil
}

func (s *pesoService) Deletar(ctx context.Context, id uuid.UUID) (*model.RegistroPeso, error) {
	peso, err := s.findPeso(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.pesos.Delete(ctx, id); err != nil {
		return nil, err
	}
	return peso, nil
}

func (s *pesoService) findPeso(ctx context.Context, id uuid.UUID) (*model.RegistroPeso, error) {
	peso, err := s.pesos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Registro de peso não encontrado")
		}
		return nil, err
	}
	return peso, nil
}

func toPesoResponse(row *repository.PesoComContexto) dto.PesoResponse {
	var posicao *string
	if row.PosicaoID != nil {
		p := row.PosicaoID.String()
		posicao = &p
	}
	return dto.PesoResponse{
		ID:                 row.ID.String(),
		SubetapaID:         row.SubetapaID.String(),
		Operador:           row.Operador,
		PesoKg:             row.PesoKg,
		QuantidadeUnidades: row.QuantidadeUnidades,
		TipoMedida:         row.TipoMedida,
		Observacoes:        row.Observacoes,
		Estacao:            row.Estacao,
		PosicaoID:          posicao,
		DataRegistro:       row.DataRegistro,
		NumeroEtapa:        row.NumeroEtapa,
		ItemCodigo:         row.ItemCodigo,
		EtapaDescricao:     row.EtapaDescricao,
		OrdemCodigo:        row.OrdemCodigo,
	}
}
