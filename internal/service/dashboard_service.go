package service

import (
	"context"

	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/repository"
)

// DashboardService expõe os painéis agregados da fábrica. As consultas vivem
// inteiras no repositório; aqui só há a fachada para os handlers.
type DashboardService interface {
	Metricas(ctx context.Context) (*dto.MetricasResponse, error)
	ProducaoDiaria(ctx context.Context) ([]dto.ProducaoDiariaResponse, error)
	PerformanceLinhas(ctx context.Context) ([]dto.PerformanceLinhaResponse, error)
	RankingOperadores(ctx context.Context) ([]dto.RankingOperadorResponse, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Metricas(ctx context.Context) (*dto.MetricasResponse, error) {
	return s.repo.Metricas(ctx)
}

func (s *dashboardService) ProducaoDiaria(ctx context.Context) ([]dto.ProducaoDiariaResponse, error) {
	return s.repo.ProducaoDiaria(ctx)
}

func (s *dashboardService) PerformanceLinhas(ctx context.Context) ([]dto.PerformanceLinhaResponse, error) {
	return s.repo.PerformanceLinhas(ctx)
}

func (s *dashboardService) RankingOperadores(ctx context.Context) ([]dto.RankingOperadorResponse, error) {
	return s.repo.RankingOperadores(ctx)
}
