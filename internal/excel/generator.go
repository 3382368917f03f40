package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/albinolog/contracts/internal/model"
)

const SheetName = "Orçamento"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the quote breakdown of a contract record as a workbook.
func (g *Generator) Generate(record model.ContractRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := g.writeQuote(file, SheetName, record); err != nil {
		return nil, err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeQuote(file *excelize.File, sheet string, record model.ContractRecord) error {
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	set("A1", "Empresa")
	set("B1", record.CompanyName)
	set("A2", "CNPJ")
	set("B2", record.TaxID)
	set("A3", "Responsável")
	set("B3", record.ResponsibleName)
	set("A4", "Localização")
	set("B4", record.CompanyLocation)
	set("A5", "Período")
	set("B5", fmt.Sprintf("%s a %s", record.StartDate, record.EndDate))

	tableRow := 7
	headers := []string{"Serviço", "Quantidade/Detalhe", "Subtotal"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, detail := range record.ServicesDetails {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), detail.Service)
		if detail.Quantity.Text != "" {
			set(fmt.Sprintf("B%d", row), detail.Quantity.Text)
		} else {
			set(fmt.Sprintf("B%d", row), detail.Quantity.Count)
		}
		set(fmt.Sprintf("C%d", row), detail.Subtotal)
	}

	totalRow := tableRow + 1 + len(record.ServicesDetails)
	set(fmt.Sprintf("A%d", totalRow), "Custo total")
	set(fmt.Sprintf("C%d", totalRow), record.TotalCost)

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("C%d", tableRow), style)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("C%d", totalRow), style)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 44)
	_ = file.SetColWidth(sheet, "C", "C", 18)
	return firstErr
}

// FileName derives a download name from the company name.
func FileName(record model.ContractRecord) string {
	name := sanitizeFileName(strings.ToLower(record.CompanyName))
	if name == "" {
		name = "cliente"
	}
	return fmt.Sprintf("orcamento-%s.xlsx", name)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
