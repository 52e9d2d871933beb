package handler

import (
	"net/http"

	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/service"

	"github.com/gin-gonic/gin"
)

type PesosHandler struct{ svc service.PesoService }

func NewPesosHandler(svc service.PesoService) *PesosHandler { return &PesosHandler{svc: svc} }

// Listar godoc
// @Summary      Listar pesagens da subetapa
// @Description  Registros mais recentes primeiro, com contexto de etapa e ordem.
// @Tags         pesos
// @Produce      json
// @Param        id path string true "UUID da subetapa"
// @Success      200 {object} map[string]interface{}
// @Router       /api/subetapas/{id}/pesos [get]
func (h *PesosHandler) Listar(c *gin.Context) {
	subetapaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	pesos, err := h.svc.Listar(c.Request.Context(), subetapaID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, pesos)
}

// Registrar godoc
// @Summary      Registrar pesagem
// @Description  Operador em maiúsculas; padrões KG, WEB e 1 unidade quando omitidos. Peso deve ser maior que zero.
// @Tags         pesos
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID da subetapa"
// @Param        body body dto.RegistrarPesoRequest true "Dados da pesagem"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} apierror.Envelope
// @Failure      404 {object} apierror.Envelope
// @Router       /api/subetapas/{id}/pesos [post]
func (h *PesosHandler) Registrar(c *gin.Context) {
	subetapaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPesoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	peso, err := h.svc.Registrar(c.Request.Context(), subetapaID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, peso)
}

// Editar godoc
// @Summary      Corrigir pesagem
// @Description  Substitui o valor e reposiciona data_registro para o momento da correção.
// @Tags         pesos
// @Accept       json
// @Produce      json
// @Param        pesoId path string true "UUID do registro"
// @Param        body   body dto.EditarPesoRequest true "Novo peso"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} apierror.Envelope
// @Failure      404 {object} apierror.Envelope
// @Router       /api/subetapas/pesos/{pesoId} [put]
func (h *PesosHandler) Editar(c *gin.Context) {
	id, ok := parseID(c, "pesoId")
	if !ok {
		return
	}
	var req dto.EditarPesoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	peso, err := h.svc.Editar(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, peso)
}

// Deletar godoc
// @Summary      Deletar pesagem
// @Tags         pesos
// @Produce      json
// @Param        pesoId path string true "UUID do registro"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.Envelope
// @Router       /api/subetapas/pesos/{pesoId} [delete]
func (h *PesosHandler) Deletar(c *gin.Context) {
	id, ok := parseID(c, "pesoId")
	if !ok {
		return
	}
	peso, err := h.svc.Deletar(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": peso.ID})
}
