package service

import (
	"context"
	"testing"
	"time"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaPesoService(t *testing.T) (*pesoService, *stubPesoRepo, uuid.UUID) {
	t.Helper()
	pesos := newStubPesoRepo()
	subetapas := newStubSubetapaRepo(pesos)

	sub := &model.Subetapa{OrdemProducaoID: uuid.New(), NumeroEtapa: 2, Descricao: "Filetagem", ItemCodigo: "X", CriadoPor: "MARIA", Ativa: true}
	require.NoError(t, subetapas.Create(context.Background(), nil, sub))

	svc := NewPesoService(pesos, subetapas).(*pesoService)
	return svc, pesos, sub.ID
}

func TestRegistrarPeso_NormalizaEDefaults(t *testing.T) {
	svc, _, subID := novaPesoService(t)

	peso, err := svc.Registrar(context.Background(), subID, dto.RegistrarPesoRequest{
		Operador: "maria silva",
		PesoKg:   decimal.NewFromFloat(12.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "MARIA SILVA", peso.Operador)
	assert.Equal(t, model.TipoMedidaPadrao, peso.TipoMedida)
	assert.Equal(t, model.EstacaoWeb, peso.Estacao)
	require.NotNil(t, peso.QuantidadeUnidades)
	assert.Equal(t, 1, *peso.QuantidadeUnidades)
	assert.Nil(t, peso.PosicaoID)
}

func TestRegistrarPeso_ValoresInformadosPrevalecem(t *testing.T) {
	svc, _, subID := novaPesoService(t)

	unidades := 6
	posicao := uuid.NewString()
	peso, err := svc.Registrar(context.Background(), subID, dto.RegistrarPesoRequest{
		Operador:           "JOSE",
		PesoKg:             decimal.NewFromFloat(42.375),
		QuantidadeUnidades: &unidades,
		TipoMedida:         "CAIXA",
		Estacao:            model.EstacaoTablet,
		PosicaoID:          &posicao,
		Observacoes:        "segunda bancada",
	})
	require.NoError(t, err)

	assert.Equal(t, "CAIXA", peso.TipoMedida)
	assert.Equal(t, model.EstacaoTablet, peso.Estacao)
	assert.Equal(t, 6, *peso.QuantidadeUnidades)
	require.NotNil(t, peso.PosicaoID)
	assert.Equal(t, posicao, peso.PosicaoID.String())
	assert.True(t, peso.PesoKg.Equal(decimal.NewFromFloat(42.375)))
}

func TestRegistrarPeso_Validacoes(t *testing.T) {
	svc, _, subID := novaPesoService(t)

	casos := []struct {
		req      dto.RegistrarPesoRequest
		mensagem string
	}{
		{dto.RegistrarPesoRequest{PesoKg: decimal.NewFromInt(10)}, "Campos obrigatórios: operador, peso_kg"},
		{dto.RegistrarPesoRequest{Operador: "MARIA"}, "Peso deve ser maior que zero"},
		{dto.RegistrarPesoRequest{Operador: "MARIA", PesoKg: decimal.NewFromFloat(-0.5)}, "Peso deve ser maior que zero"},
	}
	for _, caso := range casos {
		_, err := svc.Registrar(context.Background(), subID, caso.req)
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, err.(*apierror.Error).Kind)
		assert.Equal(t, caso.mensagem, err.(*apierror.Error).Message)
	}

	posInvalida := "nao-e-uuid"
	_, err := svc.Registrar(context.Background(), subID, dto.RegistrarPesoRequest{
		Operador: "MARIA", PesoKg: decimal.NewFromInt(1), PosicaoID: &posInvalida,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, err.(*apierror.Error).Kind)

	_, err = svc.Registrar(context.Background(), uuid.New(), dto.RegistrarPesoRequest{
		Operador: "MARIA", PesoKg: decimal.NewFromInt(1),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, err.(*apierror.Error).Kind)
}

func TestEditarPeso_RenovaDataRegistro(t *testing.T) {
	svc, pesos, subID := novaPesoService(t)
	corrigido := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	svc.agora = func() time.Time { return corrigido }

	peso, err := svc.Registrar(context.Background(), subID, dto.RegistrarPesoRequest{
		Operador: "MARIA", PesoKg: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	editado, err := svc.Editar(context.Background(), peso.ID, dto.EditarPesoRequest{PesoKg: decimal.NewFromFloat(9.75)})
	require.NoError(t, err)
	assert.True(t, editado.PesoKg.Equal(decimal.NewFromFloat(9.75)))
	assert.Equal(t, corrigido, editado.DataRegistro)

	salvo, err := pesos.FindByID(context.Background(), peso.ID)
	require.NoError(t, err)
	assert.True(t, salvo.PesoKg.Equal(decimal.NewFromFloat(9.75)))

	_, err = svc.Editar(context.Background(), peso.ID, dto.EditarPesoRequest{PesoKg: decimal.Zero})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, err.(*apierror.Error).Kind)
	assert.Equal(t, "Peso deve ser maior que zero", err.(*apierror.Error).Message)

	_, err = svc.Editar(context.Background(), uuid.New(), dto.EditarPesoRequest{PesoKg: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, err.(*apierror.Error).Kind)
}

func TestDeletarPeso(t *testing.T) {
	svc, pesos, subID := novaPesoService(t)

	peso, err := svc.Registrar(context.Background(), subID, dto.RegistrarPesoRequest{
		Operador: "MARIA", PesoKg: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.Deletar(context.Background(), peso.ID)
	require.NoError(t, err)

	_, err = pesos.FindByID(context.Background(), peso.ID)
	require.Error(t, err)

	_, err = svc.Deletar(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, err.(*apierror.Error).Kind)
}
