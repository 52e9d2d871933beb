package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/email-do-dev/prodata/internal/apierror"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaOrdemService(t *testing.T) (*ordemService, *stubOrdemRepo, *stubSubetapaRepo) {
	t.Helper()
	ordens := newStubOrdemRepo()
	subetapas := newStubSubetapaRepo(nil)
	svc := NewOrdemService(ordens, subetapas).(*ordemService)
	return svc, ordens, subetapas
}

func reqOrdemValida() dto.CriarOrdemRequest {
	return dto.CriarOrdemRequest{
		LinhaProducaoID: uuid.NewString(),
		ItemEntrada:     "ATUM-BRUTO",
		ItemSaida:       "ATUM-LOMBO",
	}
}

func TestCriarOrdem_GeraCodigoESemeiaEtapas(t *testing.T) {
	svc, ordens, subetapas := novaOrdemService(t)
	svc.agora = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	resp, err := svc.Criar(context.Background(), reqOrdemValida())
	require.NoError(t, err)
	assert.Equal(t, "OP-20260314-001", resp.Codigo)

	ordemID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	ordem, err := ordens.FindByID(context.Background(), ordemID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAberta, ordem.Status)

	subs := subetapas.porOrdem(ordemID)
	require.Len(t, subs, 2)

	entrada, saida := subs[0], subs[1]
	assert.Equal(t, model.NumeroEntrada, entrada.NumeroEtapa)
	assert.Equal(t, "Entrada do Processo", entrada.Descricao)
	assert.Equal(t, "ATUM-BRUTO", entrada.ItemCodigo)
	assert.Equal(t, model.NumeroSaida, saida.NumeroEtapa)
	assert.Equal(t, "Saída do Processo", saida.Descricao)
	assert.Equal(t, "ATUM-LOMBO", saida.ItemCodigo)
	for _, s := range subs {
		assert.False(t, s.Ativa, "etapas semeadas nascem inativas")
		assert.Equal(t, model.CriadorSistema, s.CriadoPor)
		assert.Nil(t, s.DataAtivacao)
	}
}

func TestCriarOrdem_CodigosSequenciaisNoDia(t *testing.T) {
	svc, _, _ := novaOrdemService(t)
	svc.agora = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	for i := 1; i <= 3; i++ {
		resp, err := svc.Criar(context.Background(), reqOrdemValida())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("OP-20260314-%03d", i), resp.Codigo)
	}
}

func TestCriarOrdem_Concorrente_SemCodigoDuplicado(t *testing.T) {
	svc, _, _ := novaOrdemService(t)
	svc.agora = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	const n = 20
	codigos := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Criar(context.Background(), reqOrdemValida())
			if err != nil {
				t.Error(err)
				return
			}
			codigos <- resp.Codigo
		}()
	}
	wg.Wait()
	close(codigos)

	vistos := make(map[string]bool)
	for c := range codigos {
		assert.False(t, vistos[c], "código duplicado: %s", c)
		vistos[c] = true
	}
	assert.Len(t, vistos, n)
	assert.True(t, vistos[fmt.Sprintf("OP-20260314-%03d", n)], "sequência deve chegar a %03d", n)
}

func TestCriarOrdem_CamposObrigatorios(t *testing.T) {
	svc, _, _ := novaOrdemService(t)

	casos := []dto.CriarOrdemRequest{
		{ItemEntrada: "A", ItemSaida: "B"},
		{LinhaProducaoID: uuid.NewString(), ItemSaida: "B"},
		{LinhaProducaoID: uuid.NewString(), ItemEntrada: "A"},
	}
	for _, req := range casos {
		_, err := svc.Criar(context.Background(), req)
		require.Error(t, err)
		apiErr, ok := err.(*apierror.Error)
		require.True(t, ok)
		assert.Equal(t, apierror.KindValidation, apiErr.Kind)
	}

	req := reqOrdemValida()
	req.LinhaProducaoID = "nao-e-uuid"
	_, err := svc.Criar(context.Background(), req)
	require.Error(t, err)
}

func TestAtualizarStatus(t *testing.T) {
	svc, ordens, _ := novaOrdemService(t)
	fim := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	svc.agora = func() time.Time { return fim }

	resp, err := svc.Criar(context.Background(), reqOrdemValida())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.AtualizarStatus(context.Background(), id, "PAUSADA")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, err.(*apierror.Error).Kind)

	_, err = svc.AtualizarStatus(context.Background(), uuid.New(), model.StatusFechada)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, err.(*apierror.Error).Kind)

	ordem, err := svc.AtualizarStatus(context.Background(), id, model.StatusEmAndamento)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEmAndamento, ordem.Status)
	assert.Nil(t, ordem.DataFim)

	ordem, err = svc.AtualizarStatus(context.Background(), id, model.StatusFechada)
	require.NoError(t, err)
	require.NotNil(t, ordem.DataFim)
	assert.Equal(t, fim, *ordem.DataFim)

	salva, err := ordens.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFechada, salva.Status)
}

func TestDeletarOrdem_SomenteAberta(t *testing.T) {
	svc, ordens, _ := novaOrdemService(t)

	resp, err := svc.Criar(context.Background(), reqOrdemValida())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.AtualizarStatus(context.Background(), id, model.StatusEmAndamento)
	require.NoError(t, err)

	_, err = svc.Deletar(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidState, err.(*apierror.Error).Kind)

	_, err = svc.AtualizarStatus(context.Background(), id, model.StatusAberta)
	require.NoError(t, err)

	codigo, err := svc.Deletar(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, resp.Codigo, codigo)

	_, err = ordens.FindByID(context.Background(), id)
	require.Error(t, err)

	_, err = svc.Deletar(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, err.(*apierror.Error).Kind)
}
