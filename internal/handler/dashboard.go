package handler

import (
	"net/http"

	"github.com/email-do-dev/prodata/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Metricas godoc
// @Summary      Métricas gerais da fábrica
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.MetricasResponse
// @Router       /api/dashboard/metricas [get]
func (h *DashboardHandler) Metricas(c *gin.Context) {
	m, err := h.svc.Metricas(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, m)
}

// ProducaoDiaria godoc
// @Summary      Produção dos últimos dias
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/dashboard/producao-diaria [get]
func (h *DashboardHandler) ProducaoDiaria(c *gin.Context) {
	rows, err := h.svc.ProducaoDiaria(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, rows)
}

// PerformanceLinhas godoc
// @Summary      Performance por linha de produção
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/dashboard/performance-linhas [get]
func (h *DashboardHandler) PerformanceLinhas(c *gin.Context) {
	rows, err := h.svc.PerformanceLinhas(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, rows)
}

// RankingOperadores godoc
// @Summary      Ranking de operadores por pesagens
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/dashboard/ranking-operadores [get]
func (h *DashboardHandler) RankingOperadores(c *gin.Context) {
	rows, err := h.svc.RankingOperadores(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, rows)
}
