// Package printview builds the print-ready page for a contract.
package printview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/albinolog/contracts/internal/markdown"
)

var page = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.5; margin: 20mm 15mm; color: #000; }
h1 { font-size: 16pt; text-align: center; }
h2 { font-size: 13pt; margin-top: 1.2em; }
h3 { font-size: 11pt; }
.contract { white-space: pre-wrap; }
@page { size: A4; margin: 15mm; }
</style>
</head>
<body>
<div class="contract">{{.Body}}</div>
{{- if .AutoPrint}}
<script>window.onload = function () { window.focus(); window.print(); };</script>
{{- end}}
</body>
</html>
`))

type Options struct {
	Title string
	// AutoPrint opens the print dialog once the page loads.
	AutoPrint bool
}

// Render returns the complete HTML document for the contract.
func Render(contractMarkdown string, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = "Contrato de Prestação de Serviços"
	}
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title     string
		Body      template.HTML
		AutoPrint bool
	}{
		Title:     opts.Title,
		Body:      template.HTML(markdown.ToHTML(contractMarkdown)),
		AutoPrint: opts.AutoPrint,
	})
	if err != nil {
		return "", fmt.Errorf("render print view: %w", err)
	}
	return buf.String(), nil
}
