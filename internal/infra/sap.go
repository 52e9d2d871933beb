package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/email-do-dev/prodata/internal/dto"

	"github.com/rs/zerolog/log"
)

// Grupos de catálogo servidos pelo sidecar SAP.
const (
	GrupoEntrada = "entrada"
	GrupoSaida   = "saida"
)

// sapEnvelope is the sidecar's response envelope.
type sapEnvelope struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Data    []dto.ProdutoSAP `json:"data"`
}

// SAPClient is an HTTP client that delegates SAP Business One queries to the
// sidecar. This decoupling isolates SAP outages from the core Go backend.
type SAPClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewSAPClient(sidecarURL string) *SAPClient {
	return &SAPClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Produtos fetches the item catalog for a group ("entrada" | "saida").
func (c *SAPClient) Produtos(ctx context.Context, grupo string) ([]dto.ProdutoSAP, error) {
	url := fmt.Sprintf("%s/produtos?grupo=%s", c.sidecarURL, grupo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sap: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sap: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sap: sidecar returned %d", resp.StatusCode)
	}

	var env sapEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("sap: decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("sap: sidecar error: %s", env.Error)
	}
	return env.Data, nil
}

// ── Catálogo cache ────────────────────────────────────────────────────────────

type catalogoEntry struct {
	produtos []dto.ProdutoSAP
	expira   time.Time
}

// CatalogoCache guarda o catálogo por grupo com TTL. Uma entrada vencida não é
// descartada: continua disponível como stale para quando o SAP estiver fora.
type CatalogoCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]catalogoEntry
}

func NewCatalogoCache(ttl time.Duration) *CatalogoCache {
	return &CatalogoCache{ttl: ttl, entries: make(map[string]catalogoEntry)}
}

// Get devolve o catálogo do grupo e se ainda está dentro do TTL.
func (c *CatalogoCache) Get(grupo string) (produtos []dto.ProdutoSAP, fresco bool, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[grupo]
	if !ok {
		return nil, false, false
	}
	return e.produtos, time.Now().Before(e.expira), true
}

func (c *CatalogoCache) Put(grupo string, produtos []dto.ProdutoSAP) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[grupo] = catalogoEntry{produtos: produtos, expira: time.Now().Add(c.ttl)}
}

// ── Gateway ───────────────────────────────────────────────────────────────────

// CatalogoGateway serve o catálogo de itens combinando o cache TTL com o
// sidecar atrás do circuit breaker. SAP fora do ar degrada para o último
// catálogo conhecido em vez de derrubar a tela de criação de ordens.
type CatalogoGateway struct {
	client  *SAPClient
	breaker *CircuitBreaker
	cache   *CatalogoCache
}

func NewCatalogoGateway(client *SAPClient, breaker *CircuitBreaker, cache *CatalogoCache) *CatalogoGateway {
	return &CatalogoGateway{client: client, breaker: breaker, cache: cache}
}

func (g *CatalogoGateway) ProdutosEntrada(ctx context.Context) ([]dto.ProdutoSAP, error) {
	return g.produtos(ctx, GrupoEntrada)
}

func (g *CatalogoGateway) ProdutosSaida(ctx context.Context) ([]dto.ProdutoSAP, error) {
	return g.produtos(ctx, GrupoSaida)
}

func (g *CatalogoGateway) produtos(ctx context.Context, grupo string) ([]dto.ProdutoSAP, error) {
	if produtos, fresco, ok := g.cache.Get(grupo); ok && fresco {
		return produtos, nil
	}

	var atualizados []dto.ProdutoSAP
	err := g.breaker.Execute(func() error {
		p, err := g.client.Produtos(ctx, grupo)
		if err != nil {
			return err
		}
		atualizados = p
		return nil
	})
	if err != nil {
		// Stale é melhor que nada.
		if produtos, _, ok := g.cache.Get(grupo); ok {
			log.Warn().Err(err).Str("grupo", grupo).Msg("SAP indisponível, servindo catálogo stale")
			return produtos, nil
		}
		return nil, fmt.Errorf("catálogo %s indisponível: %w", grupo, err)
	}

	g.cache.Put(grupo, atualizados)
	return atualizados, nil
}

// Atualizar força o refresh de ambos os grupos, ignorando o TTL. Usado pelo
// job assíncrono de sincronização.
func (g *CatalogoGateway) Atualizar(ctx context.Context) error {
	for _, grupo := range []string{GrupoEntrada, GrupoSaida} {
		var produtos []dto.ProdutoSAP
		err := g.breaker.Execute(func() error {
			p, err := g.client.Produtos(ctx, grupo)
			if err != nil {
				return err
			}
			produtos = p
			return nil
		})
		if err != nil {
			return fmt.Errorf("sincronizar catálogo %s: %w", grupo, err)
		}
		g.cache.Put(grupo, produtos)
		log.Info().Str("grupo", grupo).Int("itens", len(produtos)).Msg("catálogo SAP sincronizado")
	}
	return nil
}
