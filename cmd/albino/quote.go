package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/albinolog/contracts/internal/format"
	"github.com/albinolog/contracts/internal/model"
	"github.com/albinolog/contracts/internal/pricing"
)

// quoteFlags are shared by quote and contract generate.
type quoteFlags struct {
	services        []string
	start           string
	end             string
	company         string
	cnpj            string
	responsible     string
	companyLocation string
}

func (f *quoteFlags) bindPeriod(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.services, "service", "s", nil,
		"service to quote as id[=quantity], repeatable (carga, descarga, transbordo, diaria)")
	cmd.Flags().StringVar(&f.start, "start", "", "first day of service (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of service (YYYY-MM-DD)")
}

func (f *quoteFlags) bindCompany(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.company, "company", "", "company name")
	cmd.Flags().StringVar(&f.cnpj, "cnpj", "", "company CNPJ")
	cmd.Flags().StringVar(&f.responsible, "responsible", "", "name of the person responsible")
	cmd.Flags().StringVar(&f.companyLocation, "location", "", "company location")
}

func (f *quoteFlags) form() (model.QuoteForm, error) {
	selections, err := parseSelections(f.services)
	if err != nil {
		return model.QuoteForm{}, err
	}
	start, err := parseDay(f.start)
	if err != nil {
		return model.QuoteForm{}, fmt.Errorf("--start: %w", err)
	}
	end, err := parseDay(f.end)
	if err != nil {
		return model.QuoteForm{}, fmt.Errorf("--end: %w", err)
	}
	return model.QuoteForm{
		CompanyName:     f.company,
		TaxID:           f.cnpj,
		ResponsibleName: f.responsible,
		CompanyLocation: f.companyLocation,
		Period:          model.DateRange{Start: start, End: end},
		Selections:      selections,
	}, nil
}

func parseSelections(raw []string) ([]model.ServiceSelection, error) {
	selections := make([]model.ServiceSelection, 0, len(raw))
	for _, item := range raw {
		name, qty, hasQty := strings.Cut(item, "=")
		id, ok := model.ParseServiceID(name)
		if !ok {
			return nil, fmt.Errorf("unknown service %q", name)
		}
		quantity := 1
		if hasQty {
			n, err := strconv.Atoi(strings.TrimSpace(qty))
			if err != nil {
				return nil, fmt.Errorf("invalid quantity for %s: %q", id, qty)
			}
			quantity = n
		}
		selections = append(selections, model.ServiceSelection{Service: id, Quantity: quantity})
	}
	return selections, nil
}

func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func newQuoteCmd(a *app) *cobra.Command {
	flags := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a selection of services",
		Example: `  albino quote -s carga=2
  albino quote -s diaria=3 --start 2025-01-06 --end 2025-01-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := flags.form()
			if err != nil {
				return err
			}
			writeBreakdown(cmd.OutOrStdout(), pricing.ComputeQuote(form.Selections, form.Period))
			return nil
		},
	}
	flags.bindPeriod(cmd)
	return cmd
}

func writeBreakdown(out io.Writer, breakdown model.Breakdown) {
	if !breakdown.HasCost() {
		fmt.Fprintln(out, "Nenhum serviço com custo selecionado.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Serviço\tQuantidade/Detalhe\tSubtotal")
	for _, item := range breakdown.LineItems {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Label, item.Measure.Description(), format.Currency(item.Subtotal()))
	}
	fmt.Fprintf(w, "Custo total\t\t%s\n", format.Currency(breakdown.Total))
	_ = w.Flush()
}
