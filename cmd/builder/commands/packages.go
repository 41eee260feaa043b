package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildmyhome/internal/console"
	"buildmyhome/internal/model"
)

func packagesCmd() *cobra.Command {
	var filters model.PackageFilters

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Browse stock house packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAPI(); err != nil {
				return err
			}
			packages, err := api.ListPackages(cmd.Context(), filters)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(packages) == 0 {
				fmt.Fprintln(out, "No packages match these filters.")
				return nil
			}
			for _, p := range packages {
				tag := ""
				switch {
				case p.Popular:
					tag = " ★ popular"
				case p.Premium:
					tag = " ◆ premium"
				case p.Budget:
					tag = " budget"
				}
				fmt.Fprintf(out, "#%d %s%s\n   %d sq ft · %dBHK · %d bath · %s · %s\n",
					p.ID, p.Name, tag, p.SizeSqFt, p.Bedrooms, p.Bathrooms, p.Style, console.FormatRupees(p.PriceRupees))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Size, "size", "", "small, medium or large")
	cmd.Flags().StringVar(&filters.BHK, "bhk", "", "1, 2, 3 or 4+")
	cmd.Flags().StringVar(&filters.Style, "style", "", "house style")
	cmd.Flags().StringVar(&filters.Budget, "budget", "", "15-20, 20-30, 30-50 or 50+ (lakhs)")
	return cmd
}
