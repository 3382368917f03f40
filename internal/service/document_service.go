package service

import (
	"context"
	"fmt"

	"github.com/albinolog/contracts/internal/excel"
	"github.com/albinolog/contracts/internal/model"
	"github.com/albinolog/contracts/internal/pdf"
	"github.com/albinolog/contracts/internal/printview"
)

type PDFGenerator interface {
	Generate(contractMarkdown string) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(record model.ContractRecord) ([]byte, error)
}

// HTMLPrinter prints a rendered page to PDF.
type HTMLPrinter interface {
	PrintHTML(ctx context.Context, html string) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// DocumentService exports the stored contract. Exports only read the
// record; they never change it.
type DocumentService struct {
	quotes  *QuoteService
	pdf     PDFGenerator
	excel   ExcelGenerator
	printer HTMLPrinter
}

func NewDocumentService(quotes *QuoteService, pdfGen PDFGenerator, excelGen ExcelGenerator) *DocumentService {
	return &DocumentService{quotes: quotes, pdf: pdfGen, excel: excelGen}
}

// WithPrinter enables ExportPrintedPDF.
func (s *DocumentService) WithPrinter(printer HTMLPrinter) *DocumentService {
	s.printer = printer
	return s
}

func (s *DocumentService) ExportPDF(ctx context.Context, profileID string) (*ExportResult, error) {
	record, err := s.quotes.Current(ctx, profileID)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(record.ContractText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return &ExportResult{FileName: pdf.FileName, ContentType: "application/pdf", Content: content}, nil
}

// PrintView returns the print-ready HTML page that opens the print dialog.
func (s *DocumentService) PrintView(ctx context.Context, profileID string) (string, error) {
	record, err := s.quotes.Current(ctx, profileID)
	if err != nil {
		return "", err
	}
	page, err := printview.Render(record.ContractText, printview.Options{AutoPrint: true})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}
	return page, nil
}

// ExportPrintedPDF renders the print view through the configured printer.
func (s *DocumentService) ExportPrintedPDF(ctx context.Context, profileID string) (*ExportResult, error) {
	if s.printer == nil {
		return nil, fmt.Errorf("%w: no printer configured", ErrExport)
	}
	record, err := s.quotes.Current(ctx, profileID)
	if err != nil {
		return nil, err
	}
	page, err := printview.Render(record.ContractText, printview.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	content, err := s.printer.PrintHTML(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return &ExportResult{FileName: pdf.FileName, ContentType: "application/pdf", Content: content}, nil
}

func (s *DocumentService) ExportSpreadsheet(ctx context.Context, profileID string) (*ExportResult, error) {
	record, err := s.quotes.Current(ctx, profileID)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return &ExportResult{
		FileName:    excel.FileName(*record),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}
