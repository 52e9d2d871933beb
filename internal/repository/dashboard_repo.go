package repository

import (
	"context"

	"github.com/email-do-dev/prodata/internal/dto"
	"github.com/email-do-dev/prodata/internal/model"

	"gorm.io/gorm"
)

// DashboardRepository concentra as consultas de relatório do painel gerencial.
// São leituras agregadas puras; nenhuma participa do ciclo de vida das ordens.
type DashboardRepository interface {
	Metricas(ctx context.Context) (*dto.MetricasResponse, error)
	ProducaoDiaria(ctx context.Context) ([]dto.ProducaoDiariaResponse, error)
	PerformanceLinhas(ctx context.Context) ([]dto.PerformanceLinhaResponse, error)
	RankingOperadores(ctx context.Context) ([]dto.RankingOperadorResponse, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) Metricas(ctx context.Context) (*dto.MetricasResponse, error) {
	var m dto.MetricasResponse
	err := r.db.WithContext(ctx).Raw(`
		WITH metricas_base AS (
			SELECT
				COUNT(DISTINCT o.id) AS total_ordens,
				COUNT(DISTINCT CASE WHEN o.status = 'ABERTA' THEN o.id END) AS ordens_abertas,
				COUNT(DISTINCT CASE WHEN o.status = 'EM_ANDAMENTO' THEN o.id END) AS ordens_andamento,
				COUNT(DISTINCT CASE WHEN o.status = 'FECHADA' THEN o.id END) AS ordens_fechadas,
				COALESCE(SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END), 0) AS peso_entrada_total,
				COALESCE(SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END), 0) AS peso_saida_total,
				COUNT(DISTINCT p.operador) AS total_operadores,
				COUNT(DISTINCT l.id) AS linhas_ativas
			FROM ordem_producao o
			LEFT JOIN subetapa s ON o.id = s.ordem_producao_id
			LEFT JOIN registro_peso p ON s.id = p.subetapa_id
			LEFT JOIN linha_producao l ON o.linha_producao_id = l.id
			WHERE o.data_criacao >= CURRENT_DATE - INTERVAL '30 days'
		),
		producao_hoje AS (
			SELECT COALESCE(SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END), 0) AS producao_hoje
			FROM ordem_producao o
			JOIN subetapa s ON o.id = s.ordem_producao_id
			JOIN registro_peso p ON s.id = p.subetapa_id
			WHERE DATE(p.data_registro) = CURRENT_DATE
		),
		rendimento_medio AS (
			SELECT CASE
				WHEN SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) > 0
				THEN ROUND((SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) /
					SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) * 100)::numeric, 2)
				ELSE 0
			END AS rendimento_geral
			FROM ordem_producao o
			JOIN subetapa s ON o.id = s.ordem_producao_id
			JOIN registro_peso p ON s.id = p.subetapa_id
			WHERE o.data_criacao >= CURRENT_DATE - INTERVAL '7 days'
		)
		SELECT
			mb.*,
			ph.producao_hoje,
			rm.rendimento_geral,
			CASE
				WHEN mb.peso_entrada_total > 0
				THEN ROUND((mb.peso_saida_total / mb.peso_entrada_total * 100)::numeric, 2)
				ELSE 0
			END AS rendimento_total
		FROM metricas_base mb
		CROSS JOIN producao_hoje ph
		CROSS JOIN rendimento_medio rm`,
		model.NumeroEntrada, model.NumeroSaida,
		model.NumeroSaida,
		model.NumeroEntrada, model.NumeroSaida, model.NumeroEntrada,
	).Scan(&m).Error
	return &m, err
}

func (r *dashboardRepo) ProducaoDiaria(ctx context.Context) ([]dto.ProducaoDiariaResponse, error) {
	var rows []dto.ProducaoDiariaResponse
	err := r.db.WithContext(ctx).Raw(`
		WITH dias AS (
			SELECT generate_series(
				CURRENT_DATE - INTERVAL '6 days',
				CURRENT_DATE,
				INTERVAL '1 day'
			)::date AS data
		),
		producao_diaria AS (
			SELECT
				DATE(p.data_registro) AS data,
				SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg ELSE 0 END) AS peso_producao,
				COUNT(DISTINCT o.id) AS ordens_finalizadas
			FROM ordem_producao o
			JOIN subetapa s ON o.id = s.ordem_producao_id
			JOIN registro_peso p ON s.id = p.subetapa_id
			WHERE p.data_registro >= CURRENT_DATE - INTERVAL '6 days'
			GROUP BY DATE(p.data_registro)
		)
		SELECT
			d.data,
			TO_CHAR(d.data, 'DD/MM') AS data_formatada,
			COALESCE(pd.peso_producao, 0) AS producao,
			COALESCE(pd.ordens_finalizadas, 0) AS ordens
		FROM dias d
		LEFT JOIN producao_diaria pd ON d.data = pd.data
		ORDER BY d.data`,
		model.NumeroSaida,
	).Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) PerformanceLinhas(ctx context.Context) ([]dto.PerformanceLinhaResponse, error) {
	var rows []dto.PerformanceLinhaResponse
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.nome AS linha,
			COUNT(DISTINCT o.id) AS total_ordens,
			COUNT(DISTINCT CASE WHEN o.status = 'FECHADA' THEN o.id END) AS ordens_concluidas,
			COALESCE(SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END), 0) AS peso_entrada,
			COALESCE(SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END), 0) AS peso_saida,
			CASE
				WHEN SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) > 0
				THEN ROUND((SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) /
					SUM(CASE WHEN s.numero_etapa = ? THEN p.peso_kg END) * 100)::numeric, 2)
				ELSE 0
			END AS rendimento,
			COALESCE(ROUND(AVG(EXTRACT(EPOCH FROM (o.data_fim - o.data_criacao))/3600)::numeric, 1), 0) AS tempo_medio_horas
		FROM linha_producao l
		LEFT JOIN ordem_producao o ON l.id = o.linha_producao_id
		LEFT JOIN subetapa s ON o.id = s.ordem_producao_id
		LEFT JOIN registro_peso p ON s.id = p.subetapa_id
		WHERE l.ativa = true
		AND o.data_criacao >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY l.id, l.nome
		ORDER BY peso_saida DESC`,
		model.NumeroEntrada, model.NumeroSaida,
		model.NumeroEntrada, model.NumeroSaida, model.NumeroEntrada,
	).Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) RankingOperadores(ctx context.Context) ([]dto.RankingOperadorResponse, error) {
	var rows []dto.RankingOperadorResponse
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.operador,
			COUNT(p.id) AS total_registros,
			SUM(p.peso_kg) AS peso_total_registrado,
			COUNT(DISTINCT DATE(p.data_registro)) AS dias_ativos,
			ROUND(AVG(p.peso_kg)::numeric, 2) AS peso_medio_por_registro,
			MAX(p.data_registro) AS ultimo_registro
		FROM registro_peso p
		WHERE p.data_registro >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY p.operador
		HAVING COUNT(p.id) >= 5
		ORDER BY total_registros DESC
		LIMIT 10`,
	).Scan(&rows).Error
	return rows, err
}
