package service

import (
	"fmt"
	"strings"

	"github.com/albinolog/contracts/internal/format"
	"github.com/albinolog/contracts/internal/model"
)

// BuildContractRequest projects a priced quote form into the display shape
// expected by the contract generator.
func BuildContractRequest(form model.QuoteForm, breakdown model.Breakdown) (model.ContractRequest, error) {
	var missing []string
	if strings.TrimSpace(form.CompanyName) == "" {
		missing = append(missing, "companyName")
	}
	if strings.TrimSpace(form.TaxID) == "" {
		missing = append(missing, "cnpj")
	}
	if strings.TrimSpace(form.ResponsibleName) == "" {
		missing = append(missing, "responsibleName")
	}
	if len(missing) > 0 {
		return model.ContractRequest{}, fmt.Errorf("%w: required fields missing: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if len(form.Selections) == 0 || len(breakdown.LineItems) == 0 {
		return model.ContractRequest{}, fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}

	details := make([]model.ServiceDetail, 0, len(breakdown.LineItems))
	for _, item := range breakdown.LineItems {
		details = append(details, model.ServiceDetail{
			Service:  item.Label,
			Quantity: quantityOf(item.Measure),
			Subtotal: format.Currency(item.Subtotal()),
		})
	}

	return model.ContractRequest{
		CompanyName:     strings.TrimSpace(form.CompanyName),
		TaxID:           strings.TrimSpace(form.TaxID),
		ResponsibleName: strings.TrimSpace(form.ResponsibleName),
		StartDate:       format.Date(form.Period.Start),
		EndDate:         format.Date(form.Period.End),
		TotalCost:       format.Currency(breakdown.Total),
		ServicesDetails: details,
	}, nil
}

func quantityOf(m model.Measure) model.Quantity {
	switch v := m.(type) {
	case model.Counted:
		return model.Quantity{Count: v.Quantity}
	case model.CrewDays:
		return model.Quantity{Text: v.Description()}
	default:
		return model.Quantity{}
	}
}
