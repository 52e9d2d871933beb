package dto

import "github.com/shopspring/decimal"

// ProdutoSAP é um item do catálogo do ERP, como devolvido pelo sidecar SAP.
type ProdutoSAP struct {
	Codigo      string          `json:"codigo"`
	Nome        string          `json:"nome"`
	Unidade     string          `json:"unidade"`
	UltimoCusto decimal.Decimal `json:"ultimo_custo"`
	GrupoItem   int             `json:"grupo_item"`
	Peso        decimal.Decimal `json:"peso"`
	Ativo       string          `json:"ativo"`
}
