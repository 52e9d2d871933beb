package handler

import (
	"fmt"
	"net/http"

	"github.com/email-do-dev/prodata/internal/infra"
	"github.com/email-do-dev/prodata/internal/service"

	"github.com/gin-gonic/gin"
)

type RendimentoHandler struct {
	rendimento  service.RendimentoService
	ordens      service.OrdemService
	subetapas   service.SubetapaService
	storagePath string
}

func NewRendimentoHandler(rendimento service.RendimentoService, ordens service.OrdemService, subetapas service.SubetapaService, storagePath string) *RendimentoHandler {
	return &RendimentoHandler{rendimento: rendimento, ordens: ordens, subetapas: subetapas, storagePath: storagePath}
}

// Calcular godoc
// @Summary      Rendimento da ordem
// @Description  Percentual etapa a etapa e acumulado sobre as subetapas ativas, em ordem de número.
// @Tags         rendimento
// @Produce      json
// @Param        id path string true "UUID da ordem"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/rendimento [get]
func (h *RendimentoHandler) Calcular(c *gin.Context) {
	ordemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rendimentos, err := h.rendimento.Calcular(c.Request.Context(), ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, rendimentos)
}

// ExportarExcel godoc
// @Summary      Exportar rendimento em Excel
// @Tags         rendimento
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "UUID da ordem"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/rendimento/excel [get]
func (h *RendimentoHandler) ExportarExcel(c *gin.Context) {
	ordemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	ordem, err := h.ordens.Buscar(ctx, ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	rendimentos, err := h.rendimento.Calcular(ctx, ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}

	buf, err := infra.GerarRendimentoExcel(ordem, rendimentos)
	if err != nil {
		respondErr(c, err)
		return
	}

	fileName := fmt.Sprintf("rendimento_%s.xlsx", ordem.Codigo)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// RelatorioPDF godoc
// @Summary      Relatório de produção em PDF
// @Tags         rendimento
// @Produce      application/pdf
// @Param        id path string true "UUID da ordem"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.Envelope
// @Router       /api/ordens/{id}/relatorio.pdf [get]
func (h *RendimentoHandler) RelatorioPDF(c *gin.Context) {
	ordemID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	ordem, err := h.ordens.Buscar(ctx, ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	subetapas, err := h.subetapas.Listar(ctx, ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}
	rendimentos, err := h.rendimento.Calcular(ctx, ordemID)
	if err != nil {
		respondErr(c, err)
		return
	}

	filePath, err := infra.GerarRelatorioOrdemPDF(ordem, subetapas, rendimentos, h.storagePath)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.FileAttachment(filePath, fmt.Sprintf("ordem_%s.pdf", ordem.Codigo))
}
