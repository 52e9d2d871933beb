package handler

import (
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/gin-gonic/gin"
)

// ReferenciasHandler serve os cadastros somente-leitura de posições e
// operadores.
type ReferenciasHandler struct{ repo repository.ReferenciaRepository }

func NewReferenciasHandler(repo repository.ReferenciaRepository) *ReferenciasHandler {
	return &ReferenciasHandler{repo: repo}
}

// ListarPosicoes godoc
// @Summary      Listar posições de linha
// @Tags         referencias
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/posicoes [get]
func (h *ReferenciasHandler) ListarPosicoes(c *gin.Context) {
	posicoes, err := h.repo.ListPosicoes(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]dto.PosicaoResponse, 0, len(posicoes))
	for _, p := range posicoes {
		resp = append(resp, dto.PosicaoResponse{ID: p.ID.String(), Descricao: p.Descricao})
	}
	respondList(c, resp)
}

// ListarOperadores godoc
// @Summary      Listar operadores
// @Tags         referencias
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/operadores [get]
func (h *ReferenciasHandler) ListarOperadores(c *gin.Context) {
	operadores, err := h.repo.ListOperadores(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]dto.OperadorResponse, 0, len(operadores))
	for _, o := range operadores {
		resp = append(resp, dto.OperadorResponse{ID: o.ID.String(), Nome: o.Nome, Matricula: o.Matricula})
	}
	respondList(c, resp)
}
