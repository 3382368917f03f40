package http

import (
	"embed"
	"html/template"

	"github.com/albinolog/contracts/internal/format"
)

//go:embed templates/*.html
var templateFS embed.FS

const noticeMissingContract = "contrato-ausente"

var notices = map[string]string{
	noticeMissingContract: "Nenhum contrato encontrado. Preencha o orçamento para gerar um novo contrato.",
	"falha-exportacao":    "Não foi possível exportar o contrato. Tente novamente.",
	"agendado":            "Solicitação enviada. Em breve entraremos em contato.",
}

func loadPages() *template.Template {
	return template.Must(template.New("pages").Funcs(template.FuncMap{
		"currency": format.Currency,
	}).ParseFS(templateFS, "templates/*.html"))
}

func noticeText(code string) string {
	return notices[code]
}
