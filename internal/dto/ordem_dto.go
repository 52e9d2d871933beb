package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CriarOrdemRequest é o corpo de POST /api/ordens. O código NÃO é informado
// pelo cliente; é gerado sequencialmente por dia pelo serviço.
type CriarOrdemRequest struct {
	LinhaProducaoID   string          `json:"linha_producao_id" validate:"required"`
	ItemEntrada       string          `json:"item_entrada" validate:"required"`
	ItemSaida         string          `json:"item_saida" validate:"required"`
	QuantidadeInicial decimal.Decimal `json:"quantidade_inicial"`
	Observacoes       string          `json:"observacoes"`
}

// OrdemCriadaResponse devolve o essencial da ordem recém-criada.
type OrdemCriadaResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
}

// AtualizarStatusRequest é o corpo de PUT /api/ordens/:id/status.
type AtualizarStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrdemResponse é uma ordem com o nome da linha e a idade em horas, como a
// listagem sempre apresentou.
type OrdemResponse struct {
	ID                string          `json:"id"`
	Codigo            string          `json:"codigo"`
	LinhaProducaoID   string          `json:"linha_producao_id"`
	LinhaNome         string          `json:"linha_nome"`
	ItemEntrada       string          `json:"item_entrada"`
	ItemSaida         string          `json:"item_saida"`
	QuantidadeInicial decimal.Decimal `json:"quantidade_inicial"`
	Observacoes       string          `json:"observacoes"`
	Status            string          `json:"status"`
	DataCriacao       time.Time       `json:"data_criacao"`
	DataFim           *time.Time      `json:"data_fim"`
	HorasDesdeCriacao float64         `json:"horas_desde_criacao"`
}
