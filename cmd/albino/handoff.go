package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albinolog/contracts/internal/handoff"
	"github.com/albinolog/contracts/internal/model"
)

func newScheduleCmd(a *app) *cobra.Command {
	var addr model.VisitAddress
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Ask for a contract signing visit on WhatsApp",
		Long: `schedule opens WhatsApp with the visit request for the current contract.
The contract is removed from the profile once the link has been opened,
unless HANDOFF_CLEAR_ON_DISPATCH=false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd, false)
			if err != nil {
				return err
			}
			defer svc.close()

			msg, err := svc.handoffs.ScheduleVisit(cmd.Context(), a.profile, addr)
			if err != nil {
				return err
			}
			printHandoff(cmd, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr.City, "city", "", "city of the visit")
	cmd.Flags().StringVar(&addr.Neighborhood, "neighborhood", "", "neighborhood of the visit")
	cmd.Flags().StringVar(&addr.Zip, "zip", "", "CEP")
	cmd.Flags().StringVar(&addr.Street, "street", "", "street")
	cmd.Flags().StringVar(&addr.Number, "number", "", "street number")
	return cmd
}

func newTeamCmd(a *app) *cobra.Command {
	var application model.TeamApplication
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Apply to join the crew on WhatsApp",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd, false)
			if err != nil {
				return err
			}
			defer svc.close()

			msg, err := svc.handoffs.JoinTeam(cmd.Context(), application)
			if err != nil {
				return err
			}
			printHandoff(cmd, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&application.Name, "name", "", "full name")
	cmd.Flags().StringVar(&application.City, "city", "", "city")
	cmd.Flags().StringVar(&application.Neighborhood, "neighborhood", "", "neighborhood")
	cmd.Flags().StringVar(&application.PixKey, "pix", "", "PIX key for payments")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the current contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd, false)
			if err != nil {
				return err
			}
			defer svc.close()

			if err := svc.quotes.Discard(cmd.Context(), a.profile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Perfil limpo.")
			return nil
		},
	}
}

func printHandoff(cmd *cobra.Command, msg *handoff.Message) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, msg.Text)
	fmt.Fprintln(out)
	fmt.Fprintln(out, msg.URL)
}
