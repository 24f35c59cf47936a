package cmd

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/goclaw/model_problems/Advection1D"
	"github.com/notargets/goclaw/tools/convOrder"
)

// ConvCmd runs the advection order verification study: one full period on a
// refined series of grids, reporting the observed convergence order
var ConvCmd = &cobra.Command{
	Use:   "conv",
	Short: "Convergence order study on 1D advection",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			scheme, order = schemeFromName(mustString(cmd, "scheme"))
			lim, _        = cmd.Flags().GetString("limiter")
			cfl, _        = cmd.Flags().GetFloat64("CFL")
			levels, _     = cmd.Flags().GetInt("levels")
			k0, _         = cmd.Flags().GetInt("k")
			cs            = convOrder.NewStudy(fmt.Sprintf("advection1d %s order %d", mustString(cmd, "scheme"), order))
		)
		for lv := 0; lv < levels; lv++ {
			k := k0 << lv
			c, err := Advection1D.New(1.0, cfl, 2*math.Pi, k, scheme, order, lim)
			if err != nil {
				fmt.Printf("error: %s\n", err)
				os.Exit(1)
			}
			if err = c.Run(context.Background()); err != nil {
				fmt.Printf("error: %s\n", err)
				os.Exit(1)
			}
			cs.Add(2*math.Pi/float64(k), c.L1Error())
		}
		cs.Print()
	},
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func init() {
	rootCmd.AddCommand(ConvCmd)
	ConvCmd.Flags().StringP("scheme", "s", "classic", "scheme: classic or sharpclaw")
	ConvCmd.Flags().String("limiter", "none", "wave limiter for the study")
	ConvCmd.Flags().Float64("CFL", 0.9, "CFL number")
	ConvCmd.Flags().IntP("k", "k", 50, "coarsest cell count")
	ConvCmd.Flags().Int("levels", 4, "number of refinement levels")
}
