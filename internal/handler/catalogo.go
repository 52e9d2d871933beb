package handler

import (
	"net/http"

	"github.com/email-do-dev/prodata/internal/infra"
	"github.com/email-do-dev/prodata/internal/worker"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serve o catálogo de itens SAP via gateway com cache e expõe
// o gatilho de sincronização assíncrona.
type CatalogoHandler struct {
	gateway    *infra.CatalogoGateway
	dispatcher *worker.Dispatcher
}

func NewCatalogoHandler(gateway *infra.CatalogoGateway, dispatcher *worker.Dispatcher) *CatalogoHandler {
	return &CatalogoHandler{gateway: gateway, dispatcher: dispatcher}
}

// ProdutosEntrada godoc
// @Summary      Itens de entrada do catálogo SAP
// @Description  Servido do cache TTL; SAP fora do ar degrada para o último catálogo conhecido.
// @Tags         sap
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/sap/produtos-entrada [get]
func (h *CatalogoHandler) ProdutosEntrada(c *gin.Context) {
	produtos, err := h.gateway.ProdutosEntrada(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, produtos)
}

// ProdutosSaida godoc
// @Summary      Itens de saída do catálogo SAP
// @Tags         sap
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/sap/produtos-saida [get]
func (h *CatalogoHandler) ProdutosSaida(c *gin.Context) {
	produtos, err := h.gateway.ProdutosSaida(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, produtos)
}

// Sync godoc
// @Summary      Sincronizar catálogo SAP
// @Description  Enfileira o refresh no worker pool e responde 202 na hora.
// @Tags         sap
// @Produce      json
// @Success      202 {object} map[string]interface{}
// @Router       /api/sap/sync [post]
func (h *CatalogoHandler) Sync(c *gin.Context) {
	if err := h.dispatcher.EnqueueCatalogoSync(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusAccepted, gin.H{"mensagem": "Sincronização do catálogo agendada"})
}
