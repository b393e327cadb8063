// Command nutricalc computes a nutrition profile offline, without the API or
// a database.
//
//	nutricalc profile --weight 180 --height 70 --age 30 --sex male \
//	    --activity moderate --goal maintenance --format yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lg/nutrichat-api/nutrition"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "nutricalc",
		Short:        "Compute daily calorie, macro and water targets",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(optionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type profileFlags struct {
	weight, height float64
	age            int
	sex            string
	activity       string
	goal           string
	metric         bool
	format         string
}

// biometrics converts the flags to imperial biometrics.
func (f profileFlags) biometrics() nutrition.Biometrics {
	weight, height := f.weight, f.height
	if f.metric {
		weight = nutrition.KgToLbs(weight)
		height = nutrition.CmToInches(height)
	}
	return nutrition.Biometrics{
		WeightLbs:     weight,
		HeightInches:  height,
		Age:           f.age,
		Sex:           f.sex,
		ActivityLevel: f.activity,
		Goal:          f.goal,
	}
}

func profileCmd() *cobra.Command {
	var f profileFlags

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Calculate a nutrition profile from biometrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := nutrition.Calculate(f.biometrics())
			if err != nil {
				return err
			}
			return writeProfile(cmd.OutOrStdout(), p, f.format)
		},
	}

	cmd.Flags().Float64VarP(&f.weight, "weight", "w", 0, "body weight (lbs, or kg with --metric)")
	cmd.Flags().Float64VarP(&f.height, "height", "H", 0, "height (inches, or cm with --metric)")
	cmd.Flags().IntVarP(&f.age, "age", "a", 0, "age in years (13-120)")
	cmd.Flags().StringVarP(&f.sex, "sex", "s", "", "male or female")
	cmd.Flags().StringVar(&f.activity, "activity", "moderate", "activity level")
	cmd.Flags().StringVarP(&f.goal, "goal", "g", "maintenance", "goal")
	cmd.Flags().BoolVar(&f.metric, "metric", false, "read --weight as kg and --height as cm")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatText, "output format: text, json or yaml")
	for _, name := range []string{"weight", "height", "age", "sex"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func optionsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List accepted activity levels and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOptions(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func unknownFormat(format string) error {
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}
