package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albinolog/contracts/internal/generator"
	"github.com/albinolog/contracts/internal/model"
	"github.com/albinolog/contracts/internal/store"
)

type fakeGenerator struct {
	text     string
	err      error
	requests []model.ContractRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req model.ContractRequest) (model.GeneratedContract, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return model.GeneratedContract{}, f.err
	}
	return model.GeneratedContract{ContractText: f.text}, nil
}

type modelFunc func(ctx context.Context, prompt string) (string, error)

func (f modelFunc) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func newQuoteService(gen ContractGenerator) (*QuoteService, store.Factory) {
	repos := store.NewFactory(store.NewMemoryBackend())
	return NewQuoteService(gen, repos, zerolog.Nop()), repos
}

func TestSubmit_StoresRecord(t *testing.T) {
	gen := &fakeGenerator{text: "# CONTRATO\n**PARTES**"}
	svc, repos := newQuoteService(gen)
	ctx := context.Background()

	record, err := svc.Submit(ctx, "s1", validForm())
	require.NoError(t, err)
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "R$ 4.500,00", gen.requests[0].TotalCost)

	assert.Equal(t, "# CONTRATO\n**PARTES**", record.ContractText)
	assert.Equal(t, "Joinville/SC", record.CompanyLocation)
	assert.Equal(t, "2025-01-06", record.PeriodStart)
	assert.NotEmpty(t, record.QuoteID)

	stored, ok, err := repos("s1").Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *record, stored)

	current, err := svc.Current(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, *record, *current)
}

func TestSubmit_NewSubmissionReplacesRecord(t *testing.T) {
	gen := &fakeGenerator{text: "# CONTRATO"}
	svc, _ := newQuoteService(gen)
	ctx := context.Background()

	first, err := svc.Submit(ctx, "s1", validForm())
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "s1", validForm())
	require.NoError(t, err)
	assert.NotEqual(t, first.QuoteID, second.QuoteID)

	current, err := svc.Current(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second.QuoteID, current.QuoteID)
}

func TestSubmit_GenerationFailureStoresNothing(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("service unavailable")}
	svc, repos := newQuoteService(gen)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "s1", validForm())
	require.ErrorIs(t, err, ErrGeneration)

	_, ok, err := repos("s1").Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubmit_MalformedModelResponse(t *testing.T) {
	client, err := generator.New(modelFunc(func(context.Context, string) (string, error) {
		return `{"summary": "sem contrato"}`, nil
	}), zerolog.Nop())
	require.NoError(t, err)
	svc, repos := newQuoteService(client)
	ctx := context.Background()

	_, err = svc.Submit(ctx, "s1", validForm())
	require.ErrorIs(t, err, ErrGeneration)
	assert.ErrorContains(t, err, "contractText")

	_, ok, _ := repos("s1").Load(ctx)
	assert.False(t, ok)
}

func TestSubmit_ValidationBlocksGeneration(t *testing.T) {
	cases := map[string]func(*model.QuoteForm){
		"no services":      func(f *model.QuoteForm) { f.Selections = nil },
		"short cnpj":       func(f *model.QuoteForm) { f.TaxID = "123" },
		"short company":    func(f *model.QuoteForm) { f.CompanyName = "X" },
		"missing company":  func(f *model.QuoteForm) { f.CompanyName = "" },
		"quantity too big": func(f *model.QuoteForm) { f.Selections[0].Quantity = 11 },
		"unknown service":  func(f *model.QuoteForm) { f.Selections[0].Service = "guindaste" },
		"inverted period": func(f *model.QuoteForm) {
			f.Period.Start, f.Period.End = f.Period.End, f.Period.Start
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{text: "# CONTRATO"}
			svc, _ := newQuoteService(gen)
			form := validForm()
			mutate(&form)

			_, err := svc.Submit(context.Background(), "s1", form)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, gen.requests)
		})
	}
}

func TestCurrent_NoRecord(t *testing.T) {
	svc, _ := newQuoteService(&fakeGenerator{})
	_, err := svc.Current(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoActiveQuote)
}

func TestPreview(t *testing.T) {
	svc, _ := newQuoteService(&fakeGenerator{})
	got := svc.Preview(validForm())
	assert.Equal(t, int64(4500_00), got.Total)
	assert.Len(t, got.LineItems, 2)
}

func TestSubmit_QuantityBounds(t *testing.T) {
	gen := &fakeGenerator{text: "# CONTRATO"}
	svc, _ := newQuoteService(gen)

	form := validForm()
	form.Selections = append(form.Selections, model.ServiceSelection{Service: model.ServiceUnload, Quantity: 0})
	record, err := svc.Submit(context.Background(), "s1", form)
	require.NoError(t, err)
	assert.Len(t, record.ServicesDetails, 2)

	form = validForm()
	form.Selections[0].Quantity = MaxQuantity + 1
	_, err = svc.Submit(context.Background(), "s1", form)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "quantity for carga must be between 0 and 10")
}
