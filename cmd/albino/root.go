package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "albino",
		Short: "Quotes, contracts and visit scheduling for Albino Carga e Descarga",
		Long: `albino prices logistics services, generates the service contract for a
quote and hands the signing visit over to the sales team on WhatsApp.

The last generated contract is kept in a local profile until a visit is
scheduled or the profile is cleared.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.profile, "profile", "local", "local profile holding the current contract")
	root.PersistentFlags().StringVar(&a.dataPath, "data", defaultDataPath(), "path of the local profile database")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline events to stderr")

	root.AddCommand(
		newQuoteCmd(a),
		newContractCmd(a),
		newScheduleCmd(a),
		newTeamCmd(a),
		newClearCmd(a),
	)
	return root
}
