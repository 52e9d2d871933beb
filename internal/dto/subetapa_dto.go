package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CriarSubetapaRequest é o corpo de POST /api/ordens/:id/subetapas.
// O número da etapa é atribuído pelo serviço (máximo existente, exceto 99, + 1).
type CriarSubetapaRequest struct {
	Descricao  string `json:"descricao"`
	ItemCodigo string `json:"item_codigo" validate:"required"`
	CriadoPor  string `json:"criado_por"`
}

// AtivarSubetapaRequest cobre tanto a ativação quanto a conclusão de uma
// subetapa: o flag e o timestamp correspondente.
type AtivarSubetapaRequest struct {
	Ativa bool       `json:"ativa"`
	Data  *time.Time `json:"data"`
}

// SubetapaResponse é uma subetapa com os agregados vivos do livro de pesos.
type SubetapaResponse struct {
	ID              string          `json:"id"`
	OrdemProducaoID string          `json:"ordem_producao_id"`
	NumeroEtapa     int             `json:"numero_etapa"`
	Papel           string          `json:"papel"`
	Descricao       string          `json:"descricao"`
	ItemCodigo      string          `json:"item_codigo"`
	CriadoPor       string          `json:"criado_por"`
	Ativa           bool            `json:"ativa"`
	DataCriacao     time.Time       `json:"data_criacao"`
	DataAtivacao    *time.Time      `json:"data_ativacao"`
	DataConclusao   *time.Time      `json:"data_conclusao"`
	PesoTotal       decimal.Decimal `json:"peso_total"`
	TotalRegistros  int64           `json:"total_registros"`
	UltimoPeso      *time.Time      `json:"ultimo_peso"`
}

// PosicaoResponse é a referência de posição na linha.
type PosicaoResponse struct {
	ID        string `json:"id"`
	Descricao string `json:"descricao"`
}

// OperadorResponse é o cadastro de operador sincronizado do ERP.
type OperadorResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
}

// LinhaProducaoResponse é a linha de produção com seu contador desnormalizado.
type LinhaProducaoResponse struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Ativa        bool   `json:"ativa"`
	NumSubetapas int    `json:"num_subetapas"`
}
