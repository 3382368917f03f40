// Package generator turns a contract request into a Markdown contract by
// filling a versioned prompt template and asking a hosted language model
// for a structured answer.
package generator

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/albinolog/contracts/internal/model"
)

// TemplateVersion names the prompt asset in use.
const TemplateVersion = "contract_v1"

const (
	noticeDays   = 15
	paymentTerms = "PIX ou transferência bancária em até 5 dias úteis após a emissão da nota fiscal"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	ErrModel             = errors.New("language model call failed")
	ErrMalformedResponse = errors.New("malformed model response")
)

// Model produces a JSON document for a prompt. Implementations must ask the
// backing service for an object with a single string field "contractText".
type Model interface {
	GenerateStructured(ctx context.Context, prompt string) (string, error)
}

type promptData struct {
	Request      model.ContractRequest
	Provider     model.Party
	PaymentTerms string
	NoticeDays   int
}

type Client struct {
	model   Model
	tmpl    *template.Template
	version string
	log     zerolog.Logger
}

func New(m Model, log zerolog.Logger) (*Client, error) {
	return NewWithTemplate(m, TemplateVersion, log)
}

// NewWithTemplate loads templates/<version>.tmpl.
func NewWithTemplate(m Model, version string, log zerolog.Logger) (*Client, error) {
	if m == nil {
		return nil, fmt.Errorf("generator model is required")
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/"+version+".tmpl")
	if err != nil {
		return nil, fmt.Errorf("load contract template %s: %w", version, err)
	}
	return &Client{model: m, tmpl: tmpl, version: version, log: log}, nil
}

// Render fills the prompt template with the request fields.
func (c *Client) Render(req model.ContractRequest) (string, error) {
	var buf bytes.Buffer
	err := c.tmpl.Execute(&buf, promptData{
		Request:      req,
		Provider:     model.Provider,
		PaymentTerms: paymentTerms,
		NoticeDays:   noticeDays,
	})
	if err != nil {
		return "", fmt.Errorf("render contract template: %w", err)
	}
	return buf.String(), nil
}

// Generate asks the model for the contract. Output is not deterministic:
// the same request may yield different text on every call.
func (c *Client) Generate(ctx context.Context, req model.ContractRequest) (model.GeneratedContract, error) {
	prompt, err := c.Render(req)
	if err != nil {
		return model.GeneratedContract{}, err
	}

	raw, err := c.model.GenerateStructured(ctx, prompt)
	if err != nil {
		return model.GeneratedContract{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	contract, err := parseResponse(raw)
	if err != nil {
		c.log.Warn().Str("template", c.version).Int("response_len", len(raw)).Msg("model returned unexpected shape")
		return model.GeneratedContract{}, err
	}
	c.log.Debug().Str("template", c.version).Int("contract_len", len(contract.ContractText)).Msg("contract generated")
	return contract, nil
}

// parseResponse accepts exactly {"contractText": "<non-empty string>"}.
func parseResponse(raw string) (model.GeneratedContract, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return model.GeneratedContract{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(fields) != 1 {
		return model.GeneratedContract{}, fmt.Errorf("%w: expected exactly one field, got %d", ErrMalformedResponse, len(fields))
	}
	value, ok := fields["contractText"]
	if !ok {
		return model.GeneratedContract{}, fmt.Errorf("%w: contractText is missing", ErrMalformedResponse)
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return model.GeneratedContract{}, fmt.Errorf("%w: contractText is not a string", ErrMalformedResponse)
	}
	if strings.TrimSpace(text) == "" {
		return model.GeneratedContract{}, fmt.Errorf("%w: contractText is empty", ErrMalformedResponse)
	}
	return model.GeneratedContract{ContractText: text}, nil
}
