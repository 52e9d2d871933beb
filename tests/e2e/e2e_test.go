//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Full production cycle (create → activate entrada → weigh → conclude → FECHADA)
//   T-E2E-2: Concurrent order creation never duplicates the daily code
//   T-E2E-3: Deleting a stage with weight records is refused with 409
//   T-E2E-4: Weight validation and correction keep the ledger consistent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/email-do-dev/prodata/internal/config"
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/infra"
	"github.com/email-do-dev/prodata/internal/model"
	"github.com/email-do-dev/prodata/internal/router"
	"github.com/email-do-dev/prodata/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server  *httptest.Server
	linhaID string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("prodata_test"),
		tcPostgres.WithUsername("prodata"),
		tcPostgres.WithPassword("prodata"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:              3001,
		Env:               "test",
		WorkerPoolSize:    1,
		DatabaseURL:       pgURL,
		RedisURL:          rdURL,
		SAPSidecarURL:     "http://localhost:9999", // sidecar ausente; catálogo não é exercitado aqui
		CatalogoTTLMin:    5,
		ReportStoragePath: t.TempDir(),
	}

	// Connect DB (NewDatabase already runs migrations)
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed a production line
	linha := model.LinhaProducao{Nome: "Linha Filetagem 1"}
	require.NoError(t, db.Create(&linha).Error)

	sapCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	catalogo := infra.NewCatalogoGateway(
		infra.NewSAPClient(cfg.SAPSidecarURL),
		sapCB,
		infra.NewCatalogoCache(time.Duration(cfg.CatalogoTTLMin)*time.Minute),
	)
	dispatcher := worker.NewDispatcher(rdb, "") // sem destinatário: notificações viram no-op

	r := router.New(cfg, db, rdb, catalogo, sapCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, linhaID: linha.ID.String()}
}

func criarOrdem(t *testing.T, env *testEnv) dto.OrdemCriadaResponse {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/ordens", jsonBody(t, map[string]any{
		"linha_producao_id":  env.linhaID,
		"item_entrada":       "ATUM-BRUTO",
		"item_saida":         "ATUM-LOMBO",
		"quantidade_inicial": 1200.5,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Success bool                    `json:"success"`
		Data    dto.OrdemCriadaResponse `json:"data"`
	}
	decodeJSON(t, resp, &body)
	require.True(t, body.Success)
	require.NotEmpty(t, body.Data.ID)
	return body.Data
}

func listarSubetapas(t *testing.T, env *testEnv, ordemID string) []dto.SubetapaResponse {
	t.Helper()
	resp := do(t, env.server, "GET", "/api/ordens/"+ordemID+"/subetapas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool                   `json:"success"`
		Total   int                    `json:"total"`
		Data    []dto.SubetapaResponse `json:"data"`
	}
	decodeJSON(t, resp, &body)
	return body.Data
}

func buscarOrdem(t *testing.T, env *testEnv, ordemID string) dto.OrdemResponse {
	t.Helper()
	resp := do(t, env.server, "GET", "/api/ordens", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool                `json:"success"`
		Total   int                 `json:"total"`
		Data    []dto.OrdemResponse `json:"data"`
	}
	decodeJSON(t, resp, &body)
	for _, o := range body.Data {
		if o.ID == ordemID {
			return o
		}
	}
	t.Fatalf("ordem %s não encontrada na listagem", ordemID)
	return dto.OrdemResponse{}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: Full production cycle
func TestE2E_CicloCompletoDaOrdem(t *testing.T) {
	env := setupTestEnv(t)

	// 0. Health: everything connected, dead-letter queues empty
	healthResp := do(t, env.server, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, healthResp.StatusCode)
	var health struct {
		OK  bool             `json:"ok"`
		DLQ map[string]int64 `json:"dlq"`
	}
	decodeJSON(t, healthResp, &health)
	assert.True(t, health.OK)
	assert.Equal(t, int64(0), health.DLQ["jobs:email"])

	// 1. Create order: daily code starts at 001, boundary stages are seeded
	ordem := criarOrdem(t, env)
	hoje := time.Now().Format("20060102")
	assert.Equal(t, fmt.Sprintf("OP-%s-001", hoje), ordem.Codigo)

	subetapas := listarSubetapas(t, env, ordem.ID)
	require.Len(t, subetapas, 2)
	entrada, saida := subetapas[0], subetapas[1]
	assert.Equal(t, 1, entrada.NumeroEtapa)
	assert.Equal(t, "entrada", entrada.Papel)
	assert.Equal(t, "Entrada do Processo", entrada.Descricao)
	assert.Equal(t, "ATUM-BRUTO", entrada.ItemCodigo)
	assert.False(t, entrada.Ativa)
	assert.Equal(t, 99, saida.NumeroEtapa)
	assert.Equal(t, "saida", saida.Papel)
	assert.Equal(t, "ATUM-LOMBO", saida.ItemCodigo)
	assert.False(t, saida.Ativa)

	// 2. Activate entrada: order is promoted to EM_ANDAMENTO
	ativarResp := do(t, env.server, "PATCH",
		"/api/ordens/"+ordem.ID+"/subetapas/"+entrada.ID+"/ativar",
		jsonBody(t, map[string]any{"ativa": true}))
	require.Equal(t, http.StatusOK, ativarResp.StatusCode)
	var ativada struct {
		Data dto.SubetapaResponse `json:"data"`
	}
	decodeJSON(t, ativarResp, &ativada)
	assert.True(t, ativada.Data.Ativa)
	require.NotNil(t, ativada.Data.DataAtivacao)

	assert.Equal(t, "EM_ANDAMENTO", buscarOrdem(t, env, ordem.ID).Status)

	// 3. Register a weight on the active stage
	pesoResp := do(t, env.server, "POST", "/api/subetapas/"+entrada.ID+"/pesos",
		jsonBody(t, map[string]any{"operador": "maria silva", "peso_kg": 120.5}))
	require.Equal(t, http.StatusCreated, pesoResp.StatusCode)
	var peso struct {
		Data dto.PesoResponse `json:"data"`
	}
	decodeJSON(t, pesoResp, &peso)
	assert.Equal(t, "MARIA SILVA", peso.Data.Operador)
	assert.Equal(t, "KG", peso.Data.TipoMedida)
	assert.Equal(t, "WEB", peso.Data.Estacao)
	require.NotNil(t, peso.Data.QuantidadeUnidades)
	assert.Equal(t, 1, *peso.Data.QuantidadeUnidades)

	// 4. Yield report over the active stages
	rendResp := do(t, env.server, "GET", "/api/ordens/"+ordem.ID+"/rendimento", nil)
	require.Equal(t, http.StatusOK, rendResp.StatusCode)
	var rend struct {
		Total int                           `json:"total"`
		Data  []dto.RendimentoEtapaResponse `json:"data"`
	}
	decodeJSON(t, rendResp, &rend)
	require.Len(t, rend.Data, 1)
	assert.Equal(t, 1, rend.Data[0].NumeroEtapa)
	require.NotNil(t, rend.Data[0].RendimentoGeral)
	assert.Equal(t, "100", rend.Data[0].RendimentoGeral.String())

	// 5. Conclude entrada, then saída: with nothing left active the order closes
	concluirResp := do(t, env.server, "PATCH",
		"/api/ordens/"+ordem.ID+"/subetapas/"+entrada.ID+"/concluir",
		jsonBody(t, map[string]any{"ativa": false}))
	require.Equal(t, http.StatusOK, concluirResp.StatusCode)
	concluirResp.Body.Close()

	concluirResp = do(t, env.server, "PATCH",
		"/api/ordens/"+ordem.ID+"/subetapas/"+saida.ID+"/concluir",
		jsonBody(t, map[string]any{"ativa": false}))
	require.Equal(t, http.StatusOK, concluirResp.StatusCode)
	concluirResp.Body.Close()

	fechada := buscarOrdem(t, env, ordem.ID)
	assert.Equal(t, "FECHADA", fechada.Status)
	require.NotNil(t, fechada.DataFim)
}

// T-E2E-2: Concurrent creation never duplicates the daily code
func TestE2E_CodigosConcorrentesSemDuplicar(t *testing.T) {
	env := setupTestEnv(t)

	const n = 5
	codigos := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := fmt.Sprintf(`{"linha_producao_id":%q,"item_entrada":"ATUM-BRUTO","item_saida":"ATUM-POSTA"}`, env.linhaID)
			resp, err := env.server.Client().Post(env.server.URL+"/api/ordens", "application/json", bytes.NewBufferString(payload))
			if err != nil {
				t.Error(err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("status inesperado: %d", resp.StatusCode)
				return
			}
			var body struct {
				Data dto.OrdemCriadaResponse `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Error(err)
				return
			}
			codigos <- body.Data.Codigo
		}()
	}
	wg.Wait()
	close(codigos)

	vistos := make(map[string]bool)
	hoje := time.Now().Format("20060102")
	for c := range codigos {
		assert.False(t, vistos[c], "código duplicado: %s", c)
		vistos[c] = true
		assert.Contains(t, c, "OP-"+hoje+"-")
	}
	assert.Len(t, vistos, n)
}

// T-E2E-3: Stage with weight records cannot be deleted
func TestE2E_DeletarSubetapaComPesosConflita(t *testing.T) {
	env := setupTestEnv(t)
	ordem := criarOrdem(t, env)

	// Operator-created stage is born active and numbered 2
	criarResp := do(t, env.server, "POST", "/api/ordens/"+ordem.ID+"/subetapas",
		jsonBody(t, map[string]any{"item_codigo": "ATUM-POSTA", "criado_por": "MARIA", "descricao": "Filetagem"}))
	require.Equal(t, http.StatusCreated, criarResp.StatusCode)
	var etapa struct {
		Data dto.SubetapaResponse `json:"data"`
	}
	decodeJSON(t, criarResp, &etapa)
	assert.Equal(t, 2, etapa.Data.NumeroEtapa)
	assert.True(t, etapa.Data.Ativa)

	pesoResp := do(t, env.server, "POST", "/api/subetapas/"+etapa.Data.ID+"/pesos",
		jsonBody(t, map[string]any{"operador": "JOSE", "peso_kg": 42.375}))
	require.Equal(t, http.StatusCreated, pesoResp.StatusCode)
	var peso struct {
		Data dto.PesoResponse `json:"data"`
	}
	decodeJSON(t, pesoResp, &peso)

	// Refused while the ledger still references the stage
	delResp := do(t, env.server, "DELETE", "/api/subetapas/"+etapa.Data.ID, nil)
	require.Equal(t, http.StatusConflict, delResp.StatusCode)
	var falha struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeJSON(t, delResp, &falha)
	assert.False(t, falha.Success)
	assert.Contains(t, falha.Error, "registros de peso")

	// After removing the weight the stage goes away
	delPeso := do(t, env.server, "DELETE", "/api/subetapas/pesos/"+peso.Data.ID, nil)
	require.Equal(t, http.StatusOK, delPeso.StatusCode)
	delPeso.Body.Close()

	delResp = do(t, env.server, "DELETE", "/api/subetapas/"+etapa.Data.ID, nil)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()
}

// T-E2E-4: Weight validation and correction
func TestE2E_ValidacaoECorrecaoDePeso(t *testing.T) {
	env := setupTestEnv(t)
	ordem := criarOrdem(t, env)
	entrada := listarSubetapas(t, env, ordem.ID)[0]

	// Zero weight is rejected
	resp := do(t, env.server, "POST", "/api/subetapas/"+entrada.ID+"/pesos",
		jsonBody(t, map[string]any{"operador": "MARIA", "peso_kg": 0}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/api/subetapas/"+entrada.ID+"/pesos",
		jsonBody(t, map[string]any{"operador": "MARIA", "peso_kg": 10}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var peso struct {
		Data dto.PesoResponse `json:"data"`
	}
	decodeJSON(t, resp, &peso)

	// Correction keeps identity, renews the timestamp
	editResp := do(t, env.server, "PUT", "/api/subetapas/pesos/"+peso.Data.ID,
		jsonBody(t, map[string]any{"peso_kg": 9.75}))
	require.Equal(t, http.StatusOK, editResp.StatusCode)
	var editado struct {
		Data dto.PesoResponse `json:"data"`
	}
	decodeJSON(t, editResp, &editado)
	assert.Equal(t, peso.Data.ID, editado.Data.ID)
	assert.Equal(t, "9.75", editado.Data.PesoKg.String())
	assert.False(t, editado.Data.DataRegistro.Before(peso.Data.DataRegistro))

	listResp := do(t, env.server, "GET", "/api/subetapas/"+entrada.ID+"/pesos", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista struct {
		Total int                `json:"total"`
		Data  []dto.PesoResponse `json:"data"`
	}
	decodeJSON(t, listResp, &lista)
	require.Len(t, lista.Data, 1)
	assert.Equal(t, "9.75", lista.Data[0].PesoKg.String())
}
