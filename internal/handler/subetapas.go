package handler

import (
	"net/http"

	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/service"

	"github.com/gin-gonic/gin"
)

type SubetapasHandler struct{ svc service.SubetapaService }

func NewSubetapasHandler(svc service.SubetapaService) *SubetapasHandler {
	return &SubetapasHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar subetapas da ordem
// @Description  Subetapas com agregados vivos (peso total, registros, última pesagem), em ordem de número.
// @Tags         subetapas
// @Produce      json
// @Param        id path string true "UUID da ordem"
// @Success      200 {object} map[string]interface{}
// @Router       /api/ordens/{id}/subetapas [get]
func (h *SubetapasHandler) Listar(c *gin.Context) {
	ordemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	subetapas, err := h.svc.Listar(c.Request.Context(), ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, subetapas)
}

// Criar godoc
// @Summary      Criar subetapa intermediária
// @Description  Número atribuído automaticamente; criador humano nasce ativa, sistema nasce inativa.
// @Tags         subetapas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID da ordem"
// @Param        body body dto.CriarSubetapaRequest true "Dados da subetapa"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apierror.Envelope
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/subetapas [post]
func (h *SubetapasHandler) Criar(c *gin.Context) {
	ordemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CriarSubetapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sub, err := h.svc.Criar(c.Request.Context(), ordemID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, sub)
}

// Ativar godoc
// @Summary      Ativar ou desativar subetapa
// @Description  Ativar a etapa de entrada promove a ordem para EM_ANDAMENTO (idempotente).
// @Tags         subetapas
// @Accept       json
// @Produce      json
// @Param        id         path string true "UUID da ordem"
// @Param        subetapaId path string true "UUID da subetapa"
// @Param        body       body dto.AtivarSubetapaRequest true "Flag e timestamp"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/subetapas/{subetapaId}/ativar [patch]
func (h *SubetapasHandler) Ativar(c *gin.Context) {
	subetapaID, ok := parseID(c, "subetapaId")
	if !ok {
		return
	}
	var req dto.AtivarSubetapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sub, err := h.svc.Ativar(c.Request.Context(), subetapaID, req.Ativa, req.Data)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, sub)
}

// Concluir godoc
// @Summary      Concluir subetapa
// @Description  Concluir a etapa de saída fecha a ordem quando nenhuma outra etapa segue ativa.
// @Tags         subetapas
// @Accept       json
// @Produce      json
// @Param        id         path string true "UUID da ordem"
// @Param        subetapaId path string true "UUID da subetapa"
// @Param        body       body dto.AtivarSubetapaRequest true "Flag e timestamp"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/subetapas/{subetapaId}/concluir [patch]
func (h *SubetapasHandler) Concluir(c *gin.Context) {
	subetapaID, ok := parseID(c, "subetapaId")
	if !ok {
		return
	}
	var req dto.AtivarSubetapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sub, err := h.svc.Concluir(c.Request.Context(), subetapaID, req.Ativa, req.Data)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, sub)
}

// Deletar godoc
// @Summary      Deletar subetapa
// @Description  Recusa com 409 quando existem registros de peso vinculados.
// @Tags         subetapas
// @Produce      json
// @Param        id path string true "UUID da subetapa"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.Envelope
// @Failure      409 {object} apierror.Envelope
// @Router       /api/subetapas/{id} [delete]
func (h *SubetapasHandler) Deletar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sub, err := h.svc.Deletar(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": sub.ID, "numero_etapa": sub.NumeroEtapa})
}
