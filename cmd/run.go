package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/goclaw/InputParameters"
	"github.com/notargets/goclaw/model_problems/Acoustics1D"
	"github.com/notargets/goclaw/model_problems/Acoustics2D"
	"github.com/notargets/goclaw/model_problems/Advection1D"
	"github.com/notargets/goclaw/solver"
)

// RunCmd executes one model problem from an input parameters file or flags
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a model problem to its final time",
	Long: `
Runs one of the built in model problems (advection1d, acoustics1d,
acoustics2d) with the classic or sharpclaw scheme,

goclaw run -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := processRunInput(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		start := time.Now()
		if err := runProblem(ip); err != nil {
			fmt.Printf("run failed: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Elapsed time: %v\n", time.Since(start))
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("input", "I", "", "input parameters file (YAML)")
	RunCmd.Flags().StringP("problem", "p", "advection1d", "problem to run: advection1d, acoustics1d, acoustics2d")
	RunCmd.Flags().StringP("scheme", "s", "classic", "scheme: classic or sharpclaw")
	RunCmd.Flags().IntP("k", "k", 100, "Number of cells in model")
	RunCmd.Flags().IntP("order", "o", 2, "scheme order (classic: 1 or 2, sharpclaw: 5)")
	RunCmd.Flags().Float64("CFL", 0.9, "CFL - increase for speedup, decrease for stability")
	RunCmd.Flags().Float64("finalTime", 1.0, "FinalTime - the target end time for the sim")
	RunCmd.Flags().String("limiter", "mc", "wave limiter: none, minmod, superbee, vanleer, mc")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
	RunCmd.Flags().Int("np", 1, "number of partition workers (advection1d only)")
}

func processRunInput(cmd *cobra.Command) (ip *InputParameters.InputParameters) {
	ip = &InputParameters.InputParameters{}
	if inFile, _ := cmd.Flags().GetString("input"); len(inFile) != 0 {
		data, err := os.ReadFile(inFile)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		if err = ip.Parse(data); err != nil {
			fmt.Printf("unable to parse input parameters: %s\n", err)
			os.Exit(1)
		}
		ip.Print()
		return
	}
	ip.Problem, _ = cmd.Flags().GetString("problem")
	ip.Scheme, _ = cmd.Flags().GetString("scheme")
	ip.NCells, _ = cmd.Flags().GetInt("k")
	ip.Order, _ = cmd.Flags().GetInt("order")
	ip.CFL, _ = cmd.Flags().GetFloat64("CFL")
	ip.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	ip.Limiter, _ = cmd.Flags().GetString("limiter")
	ip.Partitions, _ = cmd.Flags().GetInt("np")
	return
}

func schemeFromName(name string) (s solver.SchemeType, order int) {
	if name == "sharpclaw" {
		return solver.SharpClaw, 5
	}
	return solver.Classic, 2
}

func runProblem(ip *InputParameters.InputParameters) error {
	var (
		ctx           = context.Background()
		scheme, order = schemeFromName(ip.Scheme)
	)
	if ip.Order != 0 && scheme == solver.Classic {
		order = ip.Order
	}
	if ip.Limiter == "" {
		ip.Limiter = "mc"
	}
	coeff := func(name string, def float64) float64 {
		if v, ok := ip.Coeffs[name]; ok {
			return v
		}
		return def
	}
	switch ip.Problem {
	case "acoustics1d":
		c, err := Acoustics1D.New(coeff("rho", 1), coeff("bulk", 4), ip.CFL, ip.FinalTime,
			ip.NCells, scheme, order, ip.Limiter)
		if err != nil {
			return err
		}
		return c.Run(ctx)
	case "acoustics2d":
		c, err := Acoustics2D.New(coeff("rho", 1), coeff("bulk", 4), ip.CFL, ip.FinalTime,
			ip.NCells, order, ip.Limiter)
		if err != nil {
			return err
		}
		return c.Run(ctx)
	case "advection1d", "":
		c, err := Advection1D.New(coeff("u", 1), ip.CFL, ip.FinalTime,
			ip.NCells, scheme, order, ip.Limiter)
		if err != nil {
			return err
		}
		if ip.Partitions > 1 {
			err = c.RunParallel(ctx, ip.Partitions, log())
		} else {
			err = c.Run(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Printf("L1 error vs exact solution: %12.4e\n", c.L1Error())
		return nil
	default:
		return fmt.Errorf("unknown problem %q", ip.Problem)
	}
}
