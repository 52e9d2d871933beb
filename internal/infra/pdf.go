package infra

// pdf.go
// Relatório de produção em PDF via go-pdf/fpdf.
// Uma página A4 por ordem com:
//   - Cabeçalho com código, linha e status
//   - Tabela de subetapas (número, descrição, item, peso total, registros)
//   - Tabela de rendimento (etapa a etapa e acumulado)
//
// O arquivo sai em storagePath/ordem_{codigo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/email-do-dev/prodata/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GerarRelatorioOrdemPDF escreve o relatório de produção de uma ordem e
// devolve o caminho do arquivo gerado.
func GerarRelatorioOrdemPDF(ordem *dto.OrdemResponse, subetapas []dto.SubetapaResponse, rendimentos []dto.RendimentoEtapaResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("ordem_%s.pdf", ordem.Codigo))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Cabeçalho ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Relatório de Produção", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Ordem %s", ordem.Codigo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Linha: %s    Status: %s", ordem.LinhaNome, ordem.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Entrada: %s    Saída: %s", ordem.ItemEntrada, ordem.ItemSaida), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Criada em: %s", ordem.DataCriacao.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	if ordem.DataFim != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Encerrada em: %s", ordem.DataFim.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Subetapas ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Subetapas", "", 1, "L", false, 0, "")

	colNum := contentW * 0.10
	colDesc := contentW * 0.40
	colItem := contentW * 0.20
	colPeso := contentW * 0.18
	colReg := contentW * 0.12

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colNum, 6, "Nº", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colDesc, 6, "Descrição", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colItem, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colPeso, 6, "Peso (kg)", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colReg, 6, "Registros", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, s := range subetapas {
		pdf.CellFormat(colNum, 5, fmt.Sprintf("%d", s.NumeroEtapa), "", 0, "C", false, 0, "")
		pdf.CellFormat(colDesc, 5, s.Descricao, "", 0, "L", false, 0, "")
		pdf.CellFormat(colItem, 5, s.ItemCodigo, "", 0, "L", false, 0, "")
		pdf.CellFormat(colPeso, 5, s.PesoTotal.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(colReg, 5, fmt.Sprintf("%d", s.TotalRegistros), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Rendimento ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Rendimento", "", 1, "L", false, 0, "")

	colRNum := contentW * 0.10
	colRDesc := contentW * 0.40
	colRPeso := contentW * 0.18
	colREtapa := contentW * 0.16
	colRGeral := contentW * 0.16

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colRNum, 6, "Nº", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colRDesc, 6, "Descrição", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colRPeso, 6, "Peso (kg)", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colREtapa, 6, "Etapa %", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colRGeral, 6, "Geral %", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range rendimentos {
		etapa := "-"
		if r.RendimentoEtapa != nil {
			etapa = r.RendimentoEtapa.StringFixed(2)
		}
		geral := "-"
		if r.RendimentoGeral != nil {
			geral = r.RendimentoGeral.StringFixed(2)
		}
		pdf.CellFormat(colRNum, 5, fmt.Sprintf("%d", r.NumeroEtapa), "", 0, "C", false, 0, "")
		pdf.CellFormat(colRDesc, 5, r.Descricao, "", 0, "L", false, 0, "")
		pdf.CellFormat(colRPeso, 5, r.PesoTotal.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(colREtapa, 5, etapa, "", 0, "R", false, 0, "")
		pdf.CellFormat(colRGeral, 5, geral, "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
