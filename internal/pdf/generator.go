package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/albinolog/contracts/internal/markdown"
)

// FileName is the name the contract is downloaded as.
const FileName = "contrato_prestacao_servicos.pdf"

const (
	marginLeft = 15
	marginTop  = 20
	textWidth  = 180
	lineHeight = 5.5
)

type Generator struct {
	fontName string
}

// NewGenerator uses the Helvetica core font so nothing is embedded.
func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate lays the contract out on A4 pages, wrapping lines to the text
// width and breaking pages automatically.
func (g *Generator) Generate(contractMarkdown string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Contrato de Prestação de Serviços", true)
	pdf.SetCreator("Albino Logistics", true)
	pdf.AddPage()

	// core fonts are cp1252; accents must be translated
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range markdown.Parse(contractMarkdown) {
		text := markdown.StripEmphasis(line.Text)
		if line.Level > 0 {
			pdf.SetFont(g.fontName, "B", headingSize(line.Level))
			pdf.Ln(2)
			pdf.MultiCell(textWidth, lineHeight+1, tr(text), "", "L", false)
			pdf.Ln(1)
			continue
		}
		pdf.SetFont(g.fontName, "", 10)
		if text == "" {
			pdf.Ln(lineHeight / 2)
			continue
		}
		pdf.MultiCell(textWidth, lineHeight, tr(text), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout contract pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 14
	case 2:
		return 12
	default:
		return 11
	}
}
