package dto

import "github.com/shopspring/decimal"

// RendimentoEtapaResponse é uma linha do relatório de rendimento de uma ordem,
// ordenado por numero_etapa. Os percentuais são nulos quando o denominador é
// zero ou inexistente.
type RendimentoEtapaResponse struct {
	NumeroEtapa     int              `json:"numero_etapa"`
	Descricao       string           `json:"descricao"`
	ItemCodigo      string           `json:"item_codigo"`
	PesoTotal       decimal.Decimal  `json:"peso_total"`
	PesoAnterior    *decimal.Decimal `json:"peso_anterior"`
	RendimentoEtapa *decimal.Decimal `json:"rendimento_etapa"`
	RendimentoGeral *decimal.Decimal `json:"rendimento_geral"`
}
