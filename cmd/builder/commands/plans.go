package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"buildmyhome/internal/console"
	"buildmyhome/internal/plans"
)

func openBook() (*plans.Book, error) {
	if api != nil {
		return plans.Open(store, api)
	}
	return plans.Open(store, nil)
}

func plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage saved plans",
	}
	cmd.AddCommand(plansListCmd(), plansRemoveCmd(), plansClearCmd())
	return cmd
}

func plansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show saved plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := openBook()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			entries := book.List()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved plans.")
				return nil
			}
			for i, e := range entries {
				switch {
				case e.IsPackage():
					fmt.Fprintf(out, "%d. Package #%d", i+1, *e.PackageID)
				case e.IsCustom():
					p := e.CustomPackage
					fmt.Fprintf(out, "%d. Custom %s home, %d sq ft, %d floor(s), %s",
						i+1, p.HouseType, p.LandAreaSqFt, p.Floors, console.FormatRupees(p.EstimatedCostRupees))
				}
				fmt.Fprintf(out, "  (saved %s)\n", e.SavedAt.Format("2 Jan 2006 15:04"))
			}
			return nil
		},
	}
}

func plansRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <n>",
		Short: "Remove the nth saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			book, err := openBook()
			if err != nil {
				return err
			}
			if err := book.Remove(cmd.Context(), n-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed plan %d\n", n)
			return nil
		},
	}
}

func plansClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := openBook()
			if err != nil {
				return err
			}
			if err := book.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🧹 Cleared saved plans")
			return nil
		},
	}
}
