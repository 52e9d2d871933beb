package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricasResponse agrega os indicadores dos últimos 30 dias para o painel
// gerencial.
type MetricasResponse struct {
	TotalOrdens      int64           `json:"total_ordens"`
	OrdensAbertas    int64           `json:"ordens_abertas"`
	OrdensAndamento  int64           `json:"ordens_andamento"`
	OrdensFechadas   int64           `json:"ordens_fechadas"`
	PesoEntradaTotal decimal.Decimal `json:"peso_entrada_total"`
	PesoSaidaTotal   decimal.Decimal `json:"peso_saida_total"`
	TotalOperadores  int64           `json:"total_operadores"`
	LinhasAtivas     int64           `json:"linhas_ativas"`
	ProducaoHoje     decimal.Decimal `json:"producao_hoje"`
	RendimentoGeral  decimal.Decimal `json:"rendimento_geral"`
	RendimentoTotal  decimal.Decimal `json:"rendimento_total"`
}

// ProducaoDiariaResponse é um ponto da série dos últimos 7 dias.
type ProducaoDiariaResponse struct {
	Data          time.Time       `json:"data"`
	DataFormatada string          `json:"data_formatada"`
	Producao      decimal.Decimal `json:"producao"`
	Ordens        int64           `json:"ordens"`
}

// PerformanceLinhaResponse compara as linhas de produção nos últimos 30 dias.
type PerformanceLinhaResponse struct {
	Linha            string          `json:"linha"`
	TotalOrdens      int64           `json:"total_ordens"`
	OrdensConcluidas int64           `json:"ordens_concluidas"`
	PesoEntrada      decimal.Decimal `json:"peso_entrada"`
	PesoSaida        decimal.Decimal `json:"peso_saida"`
	Rendimento       decimal.Decimal `json:"rendimento"`
	TempoMedioHoras  decimal.Decimal `json:"tempo_medio_horas"`
}

// RankingOperadorResponse é uma posição do ranking de operadores (mínimo de
// 5 registros nos últimos 30 dias).
type RankingOperadorResponse struct {
	Operador            string          `json:"operador"`
	TotalRegistros      int64           `json:"total_registros"`
	PesoTotalRegistrado decimal.Decimal `json:"peso_total_registrado"`
	DiasAtivos          int64           `json:"dias_ativos"`
	PesoMedioPorRegistro decimal.Decimal `json:"peso_medio_por_registro"`
	UltimoRegistro      time.Time       `json:"ultimo_registro"`
}
