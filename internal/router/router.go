package router

import (
	"time"

	"github.com/email-do-dev/prodata/internal/config"
	"github.com/email-do-dev/prodata/internal/handler"
	"github.com/email-do-dev/prodata/internal/infra"
	"github.com/email-do-dev/prodata/internal/middleware"
	"github.com/email-do-dev/prodata/internal/repository"
	"github.com/email-do-dev/prodata/internal/service"
	"github.com/email-do-dev/prodata/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, catalogo *infra.CatalogoGateway, sapCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	ordemRepo := repository.NewOrdemRepository(db)
	subetapaRepo := repository.NewSubetapaRepository(db)
	pesoRepo := repository.NewPesoRepository(db)
	linhaRepo := repository.NewLinhaRepository(db)
	referenciaRepo := repository.NewReferenciaRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ordemSvc := service.NewOrdemService(ordemRepo, subetapaRepo)
	subetapaSvc := service.NewSubetapaService(subetapaRepo, ordemRepo, linhaRepo, pesoRepo, dispatcher)
	pesoSvc := service.NewPesoService(pesoRepo, subetapaRepo)
	rendimentoSvc := service.NewRendimentoService(subetapaRepo, ordemRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ordensH := handler.NewOrdensHandler(ordemSvc)
	subetapasH := handler.NewSubetapasHandler(subetapaSvc)
	pesosH := handler.NewPesosHandler(pesoSvc)
	rendimentoH := handler.NewRendimentoHandler(rendimentoSvc, ordemSvc, subetapaSvc, cfg.ReportStoragePath)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	linhasH := handler.NewLinhasHandler(linhaRepo)
	referenciasH := handler.NewReferenciasHandler(referenciaRepo)
	catalogoH := handler.NewCatalogoHandler(catalogo, dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, sapCB))

	api := r.Group("/api")
	{
		api.GET("/linhas-producao", linhasH.Listar)
		api.GET("/posicoes", referenciasH.ListarPosicoes)
		api.GET("/operadores", referenciasH.ListarOperadores)

		api.GET("/ordens", ordensH.Listar)
		api.POST("/ordens", ordensH.Criar)
		api.PUT("/ordens/:id/status", ordensH.AtualizarStatus)
		api.DELETE("/ordens/:id", ordensH.Deletar)

		api.GET("/ordens/:id/subetapas", subetapasH.Listar)
		api.POST("/ordens/:id/subetapas", subetapasH.Criar)
		api.PATCH("/ordens/:id/subetapas/:subetapaId/ativar", subetapasH.Ativar)
		api.PATCH("/ordens/:id/subetapas/:subetapaId/concluir", subetapasH.Concluir)
		api.DELETE("/subetapas/:id", subetapasH.Deletar)

		api.GET("/subetapas/:id/pesos", pesosH.Listar)
		api.POST("/subetapas/:id/pesos", pesosH.Registrar)
		api.PUT("/subetapas/pesos/:pesoId", pesosH.Editar)
		api.DELETE("/subetapas/pesos/:pesoId", pesosH.Deletar)

		api.GET("/ordens/:id/rendimento", rendimentoH.Calcular)
		api.GET("/ordens/:id/rendimento/excel", rendimentoH.ExportarExcel)
		api.GET("/ordens/:id/relatorio.pdf", rendimentoH.RelatorioPDF)

		api.GET("/sap/produtos-entrada", catalogoH.ProdutosEntrada)
		api.GET("/sap/produtos-saida", catalogoH.ProdutosSaida)
		api.POST("/sap/sync", catalogoH.Sync)

		api.GET("/dashboard/metricas", dashboardH.Metricas)
		api.GET("/dashboard/producao-diaria", dashboardH.ProducaoDiaria)
		api.GET("/dashboard/performance-linhas", dashboardH.PerformanceLinhas)
		api.GET("/dashboard/ranking-operadores", dashboardH.RankingOperadores)
	}

	// Swagger UI — not exposed in production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
