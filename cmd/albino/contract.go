package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/albinolog/contracts/internal/pdf"
	"github.com/albinolog/contracts/internal/service"
)

func newContractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Generate, show and export the current contract",
	}
	cmd.AddCommand(
		newContractGenerateCmd(a),
		newContractShowCmd(a),
		newContractExportCmd(a),
	)
	return cmd
}

func newContractGenerateCmd(a *app) *cobra.Command {
	flags := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a contract for a quote and keep it in the profile",
		Example: `  albino contract generate --company "Transportes Vale" --cnpj 11.222.333/0001-44 \
    --responsible "Marina Souza" -s carga=2 --start 2025-01-06 --end 2025-01-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := flags.form()
			if err != nil {
				return err
			}
			svc, err := a.services(cmd, true)
			if err != nil {
				return err
			}
			defer svc.close()

			record, err := svc.quotes.Submit(cmd.Context(), a.profile, form)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contrato gerado para %s (%s).\n", record.CompanyName, record.TotalCost)
			fmt.Fprintln(out, "Use 'albino contract show' para revisar ou 'albino contract export' para baixar.")
			return nil
		},
	}
	flags.bindCompany(cmd)
	flags.bindPeriod(cmd)
	return cmd
}

func newContractShowCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the current contract in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd, false)
			if err != nil {
				return err
			}
			defer svc.close()

			record, err := svc.quotes.Current(cmd.Context(), a.profile)
			if err != nil {
				return err
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), record.ContractText)
				return nil
			}
			renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(record.ContractText)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	return cmd
}

func newContractExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		output     string
		viaBrowser bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current contract as PDF, printable HTML or a quote spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd, false)
			if err != nil {
				return err
			}
			defer svc.close()

			ctx := cmd.Context()
			var result *service.ExportResult
			switch strings.ToLower(formatName) {
			case "pdf":
				if viaBrowser {
					result, err = svc.documents.ExportPrintedPDF(ctx, a.profile)
				} else {
					result, err = svc.documents.ExportPDF(ctx, a.profile)
				}
			case "html":
				var page string
				page, err = svc.documents.PrintView(ctx, a.profile)
				result = &service.ExportResult{
					FileName:    strings.TrimSuffix(pdf.FileName, ".pdf") + ".html",
					ContentType: "text/html",
					Content:     []byte(page),
				}
			case "xlsx":
				result, err = svc.documents.ExportSpreadsheet(ctx, a.profile)
			default:
				return fmt.Errorf("unknown format %q (pdf, html or xlsx)", formatName)
			}
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = result.FileName
			} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				path = filepath.Join(path, result.FileName)
			}
			if err := os.WriteFile(path, result.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Arquivo salvo em %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "pdf", "pdf, html or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file or directory to write to")
	cmd.Flags().BoolVar(&viaBrowser, "via-browser", false, "print the PDF through headless Chrome")
	return cmd
}

