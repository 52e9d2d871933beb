package handler

import (
	"net/http"

	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdensHandler struct{ svc service.OrdemService }

func NewOrdensHandler(svc service.OrdemService) *OrdensHandler { return &OrdensHandler{svc: svc} }

// Listar godoc
// @Summary      Listar ordens de produção
// @Description  Retorna todas as ordens com o nome da linha e a idade em horas, mais recentes primeiro.
// @Tags         ordens
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/ordens [get]
func (h *OrdensHandler) Listar(c *gin.Context) {
	ordens, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, ordens)
}

// Criar godoc
// @Summary      Criar ordem de produção
// @Description  Gera o código sequencial do dia e semeia as subetapas de entrada e saída na mesma transação.
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Param        body body dto.CriarOrdemRequest true "Dados da ordem"
// @Success      201 {object} dto.OrdemCriadaResponse
// @Failure      400 {object} apierror.Envelope
// @Router       /api/ordens [post]
func (h *OrdensHandler) Criar(c *gin.Context) {
	var req dto.CriarOrdemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, resp)
}

// AtualizarStatus godoc
// @Summary      Atualizar status da ordem
// @Description  Transição manual de status; FECHADA e CANCELADA carimbam data_fim.
// @Tags         ordens
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID da ordem"
// @Param        body body dto.AtualizarStatusRequest true "Novo status"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.Envelope
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/status [put]
func (h *OrdensHandler) AtualizarStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ordem, err := h.svc.AtualizarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": ordem.ID, "codigo": ordem.Codigo, "status": ordem.Status, "data_fim": ordem.DataFim})
}

// Deletar godoc
// @Summary      Deletar ordem
// @Description  Remove uma ordem ainda ABERTA; devolve o código liberado.
// @Tags         ordens
// @Produce      json
// @Param        id path string true "UUID da ordem"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.Envelope
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id} [delete]
func (h *OrdensHandler) Deletar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	codigo, err := h.svc.Deletar(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"codigo_liberado": codigo})
}
