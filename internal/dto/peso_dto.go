package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarPesoRequest é o corpo de POST /api/subetapas/:id/pesos.
type RegistrarPesoRequest struct {
	Operador           string          `json:"operador" validate:"required"`
	PesoKg             decimal.Decimal `json:"peso_kg" validate:"required"`
	QuantidadeUnidades *int            `json:"quantidade_unidades"`
	TipoMedida         string          `json:"tipo_medida"`
	Estacao            string          `json:"estacao"`
	PosicaoID          *string         `json:"posicao_id"`
	Observacoes        string          `json:"observacoes"`
}

// EditarPesoRequest corrige apenas o valor do peso de um registro.
type EditarPesoRequest struct {
	PesoKg decimal.Decimal `json:"peso_kg" validate:"required"`
}

// PesoResponse é um registro de peso com o contexto de subetapa e ordem que a
// listagem sempre exibiu.
type PesoResponse struct {
	ID                 string          `json:"id"`
	SubetapaID         string          `json:"subetapa_id"`
	Operador           string          `json:"operador"`
	PesoKg             decimal.Decimal `json:"peso_kg"`
	QuantidadeUnidades *int            `json:"quantidade_unidades"`
	TipoMedida         string          `json:"tipo_medida"`
	Observacoes        string          `json:"observacoes"`
	Estacao            string          `json:"estacao"`
	PosicaoID          *string         `json:"posicao_id"`
	DataRegistro       time.Time       `json:"data_registro"`
	NumeroEtapa        int             `json:"numero_etapa"`
	ItemCodigo         string          `json:"item_codigo"`
	EtapaDescricao     string          `json:"etapa_descricao"`
	OrdemCodigo        string          `json:"ordem_codigo"`
}
