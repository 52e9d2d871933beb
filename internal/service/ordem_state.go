package service

import (
	"github.com/email-do-dev/prodata/internal/model"
)

// EventoEtapa identifica qual mutação de subetapa acabou de ocorrer.
type EventoEtapa int

const (
	EventoAtivacao EventoEtapa = iota
	EventoConclusao
)

// AvaliarTransicao é a máquina de estados da ordem: dada a subetapa recém
// mutada e a contagem de irmãs ainda ativas, devolve no máximo uma transição
// de status. Concentrar as regras aqui, em vez de espalhá-las nas mutações,
// deixa a tabela de transições auditável e testável isoladamente.
//
// Regras:
//   - ativar a etapa de entrada (1) leva a ordem a EM_ANDAMENTO, sempre e de
//     forma idempotente; é a única promoção automática;
//   - concluir a etapa de saída (99) com nenhuma outra etapa ativa fecha a
//     ordem; é a única condição de fechamento automático.
//
// Qualquer outra mutação de etapa nunca altera o status da ordem.
func AvaliarTransicao(evento EventoEtapa, etapa *model.Subetapa, ativasRestantes int64) (string, bool) {
	switch evento {
	case EventoAtivacao:
		if etapa.Papel() == model.PapelEntrada && etapa.Ativa {
			return model.StatusEmAndamento, true
		}
	case EventoConclusao:
		if etapa.Papel() == model.PapelSaida && !etapa.Ativa && ativasRestantes == 0 {
			return model.StatusFechada, true
		}
	}
	return "", false
}
