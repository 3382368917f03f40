package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albinolog/contracts/internal/model"
)

func sampleRecord() model.ContractRecord {
	return model.ContractRecord{
		ContractRequest: model.ContractRequest{
			CompanyName:     "Transportes Vale Ltda",
			TaxID:           "11.222.333/0001-44",
			ResponsibleName: "Marina Souza",
			StartDate:       "06/01/2025",
			EndDate:         "10/01/2025",
			TotalCost:       "R$ 4.500,00",
			ServicesDetails: []model.ServiceDetail{
				{Service: "Carga", Quantity: model.Quantity{Count: 2}, Subtotal: "R$ 1.200,00"},
				{Service: "Diária", Quantity: model.Quantity{Text: "3 colaborador(es) por 5 dia(s) útil(eis)"}, Subtotal: "R$ 3.300,00"},
			},
		},
		QuoteID:         "6f1c1e2a-1111-4c2e-9c43-0a0a0a0a0a0a",
		CompanyLocation: "Joinville/SC",
		PeriodStart:     "2025-01-06",
		PeriodEnd:       "2025-01-10",
		Selections: []model.ServiceSelection{
			{Service: model.ServiceLoad, Quantity: 2},
			{Service: model.ServiceDailyCrew, Quantity: 3},
		},
		ContractText: "# CONTRATO\n\n**PARTES CONTRATANTES**",
	}
}

func TestContractStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewContractStore(NewMemoryBackend(), "profile-1")
	record := sampleRecord()

	require.NoError(t, repo.Save(ctx, record))

	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record, got)
}

func TestContractStore_LoadWithoutSave(t *testing.T) {
	_, ok, err := NewContractStore(NewMemoryBackend(), "").Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContractStore_CorruptedValueIsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	repo := NewContractStore(backend, "p")

	for _, raw := range []string{`{not json`, `[]`, `{"companyName":"X"}`, `{"contractText":"", "companyName":"X", "totalCost":"R$ 1,00"}`} {
		require.NoError(t, backend.Set(ctx, "p:"+ContractKey, []byte(raw)))
		_, ok, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "payload %q should be treated as absent", raw)
	}
}

func TestContractStore_SaveOverwritesAndClearRemoves(t *testing.T) {
	ctx := context.Background()
	repo := NewContractStore(NewMemoryBackend(), "p")

	first := sampleRecord()
	second := sampleRecord()
	second.CompanyName = "Outra Empresa SA"

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Outra Empresa SA", got.CompanyName)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// clearing twice is harmless
	require.NoError(t, repo.Clear(ctx))
}

func TestFactory_IsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(NewMemoryBackend())

	require.NoError(t, factory("a").Save(ctx, sampleRecord()))

	_, ok, err := factory("b").Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = factory("a").Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "profile", "albino.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMissing)

	repo := NewContractStore(backend, "cli")
	record := sampleRecord()
	require.NoError(t, repo.Save(ctx, record))
	record.TotalCost = "R$ 9,00"
	require.NoError(t, repo.Save(ctx, record))

	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record, got)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
