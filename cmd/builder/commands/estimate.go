package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"buildmyhome/internal/console"
	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"
)

func estimateCmd() *cobra.Command {
	var (
		land      int
		floors    int
		houseType string
		interior  string
		materials []string
		remote    bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a configuration without the wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			hc := model.HomeConfiguration{
				LandAreaSqFt: land,
				Floors:       floors,
				Bedrooms:     1,
				Bathrooms:    1,
				HouseType:    model.HouseType(strings.ToLower(houseType)),
				InteriorType: model.InteriorType(strings.ToLower(interior)),
				Materials:    model.Materials{},
			}
			for _, m := range materials {
				cat, id, ok := strings.Cut(m, "=")
				if !ok || id == "" {
					return fmt.Errorf("--material wants category=id, got %q", m)
				}
				hc.Materials[model.MaterialCategory(strings.ToLower(cat))] = id
			}
			if err := model.Validator().Struct(hc); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			b := estimate.Explain(hc)
			cost := b.Rounded
			source := "local formula"

			if remote {
				if err := requireAPI(); err != nil {
					return err
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Estimation.RemoteTimeout)
				defer cancel()
				if v, err := api.Estimate(ctx, hc); err != nil {
					fmt.Fprintf(out, "⚠️  Remote estimate failed (%v), using the local formula\n", err)
				} else {
					cost, source = v, "API"
				}
			}

			fmt.Fprintf(out, "Base (%d sq ft × ₹%d):  %s\n", land, estimate.RatePerSqFt, console.FormatRupees(int64(b.Base)))
			fmt.Fprintf(out, "Floors ×%.2f  Type ×%.2f  Interior ×%.2f  Materials ×%.2f\n",
				b.FloorMultiplier, b.TypeMultiplier, b.InteriorMultiplier, b.MaterialsFactor)
			fmt.Fprintf(out, "Estimated cost: %s (%s)\n", console.FormatRupees(cost), source)
			return nil
		},
	}

	cmd.Flags().IntVar(&land, "land", 1000, "land area in sq ft")
	cmd.Flags().IntVar(&floors, "floors", 1, "number of floors")
	cmd.Flags().StringVar(&houseType, "type", "modern", "modern, traditional, contemporary or minimalist")
	cmd.Flags().StringVar(&interior, "interior", "", "basic, premium or luxury")
	cmd.Flags().StringArrayVar(&materials, "material", nil, "category=id, repeatable")
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the API instead of computing locally")
	return cmd
}
