package model

import (
	"time"

	"github.com/google/uuid"
)

// Números de etapa reservados. A etapa 1 é sempre a entrada do processo e a 99
// a saída; etapas intermediárias criadas pelo operador recebem 2, 3, 4…
// A 99 é excluída da sequência para permanecer o marcador terminal.
const (
	NumeroEntrada = 1
	NumeroSaida   = 99
)

// CriadorSistema é a identidade usada nas subetapas semeadas automaticamente.
// Subetapas criadas por ela nascem inativas; qualquer criador humano ativa na hora.
const CriadorSistema = "Sistema"

// PapelEtapa é a visão tipada do papel de uma subetapa no processo, para que as
// regras de transição não dependam de números mágicos espalhados.
type PapelEtapa int

const (
	PapelEntrada PapelEtapa = iota
	PapelIntermediaria
	PapelSaida
)

func (p PapelEtapa) String() string {
	switch p {
	case PapelEntrada:
		return "entrada"
	case PapelSaida:
		return "saida"
	default:
		return "intermediaria"
	}
}

// Subetapa é um ponto de pesagem dentro do processo de uma ordem.
// Os agregados de peso (total, contagem, último registro) são sempre calculados
// na leitura a partir de registro_peso, nunca armazenados aqui.
type Subetapa struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdemProducaoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subetapa_ordem_numero"`
	NumeroEtapa     int       `gorm:"not null;uniqueIndex:idx_subetapa_ordem_numero"`
	Descricao       string    `gorm:"not null"`
	ItemCodigo      string    `gorm:"not null"`
	CriadoPor       string    `gorm:"not null;default:'Sistema'"`
	Ativa           bool      `gorm:"not null;default:false"`
	DataCriacao     time.Time `gorm:"autoCreateTime"`
	DataAtivacao    *time.Time
	DataConclusao   *time.Time

	Ordem *Ordem `gorm:"foreignKey:OrdemProducaoID"`
}

func (Subetapa) TableName() string { return "subetapa" }

// Papel devolve o papel da subetapa no processo.
func (s *Subetapa) Papel() PapelEtapa {
	switch s.NumeroEtapa {
	case NumeroEntrada:
		return PapelEntrada
	case NumeroSaida:
		return PapelSaida
	default:
		return PapelIntermediaria
	}
}
