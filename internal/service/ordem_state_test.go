package service

import (
	"testing"

	"github.com/email-do-dev/prodata/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAvaliarTransicao(t *testing.T) {
	casos := []struct {
		nome     string
		evento   EventoEtapa
		numero   int
		ativa    bool
		ativas   int64
		status   string
		transita bool
	}{
		{"ativar entrada promove", EventoAtivacao, model.NumeroEntrada, true, 1, model.StatusEmAndamento, true},
		{"entrada inativa nao promove", EventoAtivacao, model.NumeroEntrada, false, 0, "", false},
		{"ativar intermediaria nao promove", EventoAtivacao, 2, true, 2, "", false},
		{"ativar saida nao promove", EventoAtivacao, model.NumeroSaida, true, 1, "", false},
		{"concluir saida sem ativas fecha", EventoConclusao, model.NumeroSaida, false, 0, model.StatusFechada, true},
		{"concluir saida com etapa ativa nao fecha", EventoConclusao, model.NumeroSaida, false, 1, "", false},
		{"saida ainda ativa nao fecha", EventoConclusao, model.NumeroSaida, true, 0, "", false},
		{"concluir intermediaria nunca fecha", EventoConclusao, 3, false, 0, "", false},
		{"concluir entrada nunca fecha", EventoConclusao, model.NumeroEntrada, false, 0, "", false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			etapa := &model.Subetapa{NumeroEtapa: c.numero, Ativa: c.ativa}
			status, transita := AvaliarTransicao(c.evento, etapa, c.ativas)
			assert.Equal(t, c.transita, transita)
			assert.Equal(t, c.status, status)
		})
	}
}
