package infra

import (
	"bytes"
	"fmt"

	"github.com/email-do-dev/prodata/internal/dto"

	"github.com/xuri/excelize/v2"
)

// GerarRendimentoExcel monta a planilha de rendimento de uma ordem e devolve o
// arquivo em memória, pronto para download.
func GerarRendimentoExcel(ordem *dto.OrdemResponse, rendimentos []dto.RendimentoEtapaResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Rendimento"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Ordem %s", ordem.Codigo))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Linha: %s", ordem.LinhaNome))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Status: %s", ordem.Status))

	headers := []string{"Nº Etapa", "Descrição", "Item", "Peso Total (kg)", "Peso Anterior (kg)", "Rendimento Etapa (%)", "Rendimento Geral (%)"}
	const headerRow = 5
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, r := range rendimentos {
		row := headerRow + 1 + i
		set := func(col int, v interface{}) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			f.SetCellValue(sheet, cell, v)
		}
		set(1, r.NumeroEtapa)
		set(2, r.Descricao)
		set(3, r.ItemCodigo)
		set(4, r.PesoTotal.InexactFloat64())
		if r.PesoAnterior != nil {
			set(5, r.PesoAnterior.InexactFloat64())
		}
		if r.RendimentoEtapa != nil {
			set(6, r.RendimentoEtapa.InexactFloat64())
		}
		if r.RendimentoGeral != nil {
			set(7, r.RendimentoGeral.InexactFloat64())
		}
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write buffer: %w", err)
	}
	return buf, nil
}
