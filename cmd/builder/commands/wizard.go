package commands

import (
	"os"

	"github.com/spf13/cobra"

	"buildmyhome/internal/console"
	"buildmyhome/internal/plans"
	"buildmyhome/internal/wizard"
)

func wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Walk through the five-step home builder",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := wizard.Options{Store: store, Timeout: cfg.Estimation.RemoteTimeout}
			var remote plans.Remote
			var capi console.API
			if api != nil {
				opts.Remote = api
				remote = api
				capi = api
			}

			w := wizard.New(opts)
			defer w.Close()

			book, err := plans.Open(store, remote)
			if err != nil {
				return err
			}

			c := console.New(w, book, capi, cmd.OutOrStdout())
			return c.Run(cmd.Context(), os.Stdin)
		},
	}
}
