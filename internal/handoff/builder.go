// Package handoff composes the WhatsApp messages that hand a lead over to
// the sales team. Dispatching is fire-and-forget: nothing here confirms
// delivery or retries.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/albinolog/contracts/internal/model"
)

const DefaultContact = "5547997292357"

const chatBaseURL = "https://wa.me/"

var (
	ErrIncompleteAddress     = errors.New("visit address is incomplete")
	ErrIncompleteApplication = errors.New("team application is incomplete")
)

// Message is a composed handoff: the text and the deep link carrying it.
type Message struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Dispatcher opens a handoff link somewhere the user can send it from.
type Dispatcher interface {
	Dispatch(ctx context.Context, link string) error
}

type Builder struct {
	contact string
}

func NewBuilder(contact string) *Builder {
	if strings.TrimSpace(contact) == "" {
		contact = DefaultContact
	}
	return &Builder{contact: strings.TrimSpace(contact)}
}

// ContractMessage asks for a signing visit at addr for the stored quote.
func (b *Builder) ContractMessage(record model.ContractRecord, addr model.VisitAddress) (Message, error) {
	if missing := addr.MissingFields(); len(missing) > 0 {
		return Message{}, fmt.Errorf("%w: %s", ErrIncompleteAddress, strings.Join(missing, ", "))
	}

	lines := []string{
		"Olá, gostaria de agendar uma visita para assinatura de contrato.",
		"",
		"*DADOS DA EMPRESA:*",
		"- *Empresa:* " + record.CompanyName,
		"- *CNPJ:* " + record.TaxID,
		"- *Responsável:* " + record.ResponsibleName,
		"- *Localização da Empresa:* " + orDash(record.CompanyLocation),
		"",
		"*DETALHES DO CONTRATO:*",
		fmt.Sprintf("- *Período:* %s a %s", record.StartDate, record.EndDate),
		"- *Serviços Contratados:*",
	}
	for _, detail := range record.ServicesDetails {
		lines = append(lines, fmt.Sprintf("- %s: %s (Subtotal: %s)", detail.Service, detail.Quantity, detail.Subtotal))
	}
	lines = append(lines,
		"- *CUSTO TOTAL:* "+record.TotalCost,
		"",
		"*ENDEREÇO PARA VISITA:*",
		"- *Cidade:* "+strings.TrimSpace(addr.City),
		"- *Bairro:* "+strings.TrimSpace(addr.Neighborhood),
		"- *CEP:* "+strings.TrimSpace(addr.Zip),
		fmt.Sprintf("- *Rua:* %s, Nº %s", strings.TrimSpace(addr.Street), strings.TrimSpace(addr.Number)),
		"",
		"Aguardo a confirmação. Obrigado!",
	)

	return b.message(strings.Join(lines, "\n")), nil
}

// TeamMessage introduces a candidate who wants to join the crew.
func (b *Builder) TeamMessage(app model.TeamApplication) (Message, error) {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"name", app.Name},
		{"city", app.City},
		{"neighborhood", app.Neighborhood},
	} {
		if len([]rune(strings.TrimSpace(field.value))) < 2 {
			missing = append(missing, field.name)
		}
	}
	if strings.TrimSpace(app.PixKey) == "" {
		missing = append(missing, "pixKey")
	}
	if len(missing) > 0 {
		return Message{}, fmt.Errorf("%w: %s", ErrIncompleteApplication, strings.Join(missing, ", "))
	}

	text := fmt.Sprintf(
		"Olá Gustavo, me chamo %s. Gostaria de fazer parte da equipe ALBINO. Moro em %s no bairro %s. Caso dê tudo certo, minha chave PIX é %s para futuras transações.",
		strings.TrimSpace(app.Name), strings.TrimSpace(app.City), strings.TrimSpace(app.Neighborhood), strings.TrimSpace(app.PixKey),
	)
	return b.message(text), nil
}

func (b *Builder) message(text string) Message {
	return Message{
		URL:  chatBaseURL + b.contact + "?text=" + encode(text),
		Text: text,
	}
}

// encode percent-encodes like encodeURIComponent, spaces as %20.
func encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
