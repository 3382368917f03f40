package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/albinolog/contracts/internal/format"
	"github.com/albinolog/contracts/internal/model"
	"github.com/albinolog/contracts/internal/pricing"
	"github.com/albinolog/contracts/internal/store"
)

// MaxQuantity is the largest quantity the quote form offers per service.
const MaxQuantity = 10

type ContractGenerator interface {
	Generate(ctx context.Context, req model.ContractRequest) (model.GeneratedContract, error)
}

type QuoteService struct {
	generator ContractGenerator
	repos     store.Factory
	log       zerolog.Logger
	now       func() time.Time
}

func NewQuoteService(generator ContractGenerator, repos store.Factory, log zerolog.Logger) *QuoteService {
	return &QuoteService{
		generator: generator,
		repos:     repos,
		log:       log,
		now:       time.Now,
	}
}

// Preview prices the current form values. It never fails; invalid
// selections simply contribute nothing.
func (s *QuoteService) Preview(form model.QuoteForm) model.Breakdown {
	return pricing.ComputeQuote(form.Selections, form.Period)
}

// Submit prices the form, generates the contract and stores the result for
// the profile. Nothing is stored when generation fails.
func (s *QuoteService) Submit(ctx context.Context, profileID string, form model.QuoteForm) (*model.ContractRecord, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	quote := model.Quote{
		ID:          uuid.New(),
		Form:        form,
		Breakdown:   pricing.ComputeQuote(form.Selections, form.Period),
		SubmittedAt: s.now(),
	}

	req, err := BuildContractRequest(quote.Form, quote.Breakdown)
	if err != nil {
		return nil, err
	}

	contract, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("quote_id", quote.ID.String()).Msg("contract generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	record := model.ContractRecord{
		ContractRequest: req,
		QuoteID:         quote.ID.String(),
		CompanyLocation: strings.TrimSpace(form.CompanyLocation),
		PeriodStart:     format.ISODate(form.Period.Start),
		PeriodEnd:       format.ISODate(form.Period.End),
		Selections:      append([]model.ServiceSelection(nil), form.Selections...),
		ContractText:    contract.ContractText,
	}
	if err := s.repos(profileID).Save(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("quote_id", quote.ID.String()).
		Int("line_items", len(quote.Breakdown.LineItems)).
		Int64("total_cents", quote.Breakdown.Total).
		Msg("quote submitted")
	return &record, nil
}

// Current returns the stored record or ErrNoActiveQuote.
func (s *QuoteService) Current(ctx context.Context, profileID string) (*model.ContractRecord, error) {
	record, ok, err := s.repos(profileID).Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoActiveQuote
	}
	return &record, nil
}

// Discard forgets the stored record.
func (s *QuoteService) Discard(ctx context.Context, profileID string) error {
	return s.repos(profileID).Clear(ctx)
}

func validateForm(form model.QuoteForm) error {
	var problems []string
	if name := strings.TrimSpace(form.CompanyName); name != "" && len([]rune(name)) < 2 {
		problems = append(problems, "companyName must have at least 2 characters")
	}
	if taxID := strings.TrimSpace(form.TaxID); taxID != "" && len([]rune(taxID)) < 14 {
		problems = append(problems, "cnpj must have at least 14 characters")
	}
	if name := strings.TrimSpace(form.ResponsibleName); name != "" && len([]rune(name)) < 2 {
		problems = append(problems, "responsibleName must have at least 2 characters")
	}
	for _, sel := range form.Selections {
		if _, ok := pricing.Lookup(sel.Service); !ok {
			problems = append(problems, fmt.Sprintf("unknown service %q", sel.Service))
			continue
		}
		if sel.Quantity < 0 || sel.Quantity > MaxQuantity {
			problems = append(problems, fmt.Sprintf("quantity for %s must be between 0 and %d", sel.Service, MaxQuantity))
		}
	}
	if !form.Period.Start.IsZero() && !form.Period.End.IsZero() && form.Period.End.Before(form.Period.Start) {
		problems = append(problems, "endDate must not be before startDate")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
