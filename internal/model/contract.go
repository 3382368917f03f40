package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quantity is either a count or a free-text description (crew days).
type Quantity struct {
	Count int
	Text  string
}

func (q Quantity) String() string {
	if q.Text != "" {
		return q.Text
	}
	return strconv.Itoa(q.Count)
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Text != "" {
		return json.Marshal(q.Text)
	}
	return json.Marshal(q.Count)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*q = Quantity{Text: text}
		return nil
	}
	var count int
	if err := json.Unmarshal(data, &count); err != nil {
		return fmt.Errorf("quantity must be a number or a string: %w", err)
	}
	*q = Quantity{Count: count}
	return nil
}

type ServiceDetail struct {
	Service  string   `json:"service"`
	Quantity Quantity `json:"quantity"`
	Subtotal string   `json:"subtotal"`
}

// ContractRequest is the display-formatted projection of a Quote that is
// sent to the contract generator.
type ContractRequest struct {
	CompanyName     string          `json:"companyName"`
	TaxID           string          `json:"cnpj"`
	ResponsibleName string          `json:"responsibleName"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	TotalCost       string          `json:"totalCost"`
	ServicesDetails []ServiceDetail `json:"servicesDetails"`
}

type GeneratedContract struct {
	ContractText string `json:"contractText"`
}

// ContractRecord is what survives between the quote submission and the
// review and scheduling pages.
type ContractRecord struct {
	ContractRequest
	QuoteID         string             `json:"quoteId"`
	CompanyLocation string             `json:"companyLocation"`
	PeriodStart     string             `json:"periodStart,omitempty"`
	PeriodEnd       string             `json:"periodEnd,omitempty"`
	Selections      []ServiceSelection `json:"selections"`
	ContractText    string             `json:"contractText"`
}

// Valid reports whether the record has the fields every downstream page needs.
func (r ContractRecord) Valid() bool {
	return r.ContractText != "" && r.CompanyName != "" && r.TotalCost != ""
}
