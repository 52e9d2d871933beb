package handler

import (
	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/gin-gonic/gin"
)

// LinhasHandler serve o cadastro de linhas direto do repositório: não há regra
// de negócio entre a rota e a consulta.
type LinhasHandler struct{ repo repository.LinhaRepository }

func NewLinhasHandler(repo repository.LinhaRepository) *LinhasHandler {
	return &LinhasHandler{repo: repo}
}

// Listar godoc
// @Summary      Listar linhas de produção ativas
// @Tags         referencias
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/linhas-producao [get]
func (h *LinhasHandler) Listar(c *gin.Context) {
	linhas, err := h.repo.ListAtivas(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	resp := make([]dto.LinhaProducaoResponse, 0, len(linhas))
	for _, l := range linhas {
		resp = append(resp, dto.LinhaProducaoResponse{
			ID:           l.ID.String(),
			Nome:         l.Nome,
			Ativa:        l.Ativa,
			NumSubetapas: l.NumSubetapas,
		})
	}
	respondList(c, resp)
}
