package worker

// catalogo_worker.go
// Processa os jobs de sincronização do catálogo SAP de QueueCatalogo. O
// handler do POST /api/sap/sync apenas enfileira; o refresh de verdade, com
// retry, acontece aqui para não segurar a requisição no tempo do SAP.

import (
	"context"
	"encoding/json"

	"github.com/email-do-dev/prodata/internal/infra"
)

// CatalogoWorker refreshes the SAP item catalog cache.
type CatalogoWorker struct {
	gateway *infra.CatalogoGateway
}

func NewCatalogoWorker(gateway *infra.CatalogoGateway) *CatalogoWorker {
	return &CatalogoWorker{gateway: gateway}
}

func (w *CatalogoWorker) Process(ctx context.Context, _ json.RawMessage) error {
	return withRetry(ctx, 3, func(int) error {
		return w.gateway.Atualizar(ctx)
	})
}
