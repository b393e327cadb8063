package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"lg/nutrichat-api/nutrition"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type optionSet struct {
	ActivityLevels []nutrition.Option `json:"activity_levels" yaml:"activity_levels"`
	Goals          []nutrition.Option `json:"goals" yaml:"goals"`
}

func writeProfile(w io.Writer, p nutrition.Profile, format string) error {
	switch format {
	case formatText:
		printProfile(w, p)
		return nil
	case formatJSON:
		return writeJSON(w, p)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(p)
	}
	return unknownFormat(format)
}

func writeOptions(w io.Writer, format string) error {
	set := optionSet{ActivityLevels: nutrition.ActivityLevels(), Goals: nutrition.Goals()}
	switch format {
	case formatText:
		printOptions(w, set)
		return nil
	case formatJSON:
		return writeJSON(w, set)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(set)
	}
	return unknownFormat(format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProfile(w io.Writer, p nutrition.Profile) {
	fmt.Fprintln(w, "Nutrition Profile")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "  %-16s %.1f lbs\n", "Weight:", p.WeightLbs)
	fmt.Fprintf(w, "  %-16s %.1f in\n", "Height:", p.HeightInches)
	fmt.Fprintf(w, "  %-16s %d\n", "Age:", p.Age)
	fmt.Fprintf(w, "  %-16s %s\n", "Sex:", p.Sex)
	fmt.Fprintf(w, "  %-16s %s\n", "Activity:", p.ActivityLevel)
	fmt.Fprintf(w, "  %-16s %s\n", "Goal:", p.Goal)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s %6d kcal\n", "BMR:", p.BMR)
	fmt.Fprintf(w, "  %-16s %6d kcal\n", "TDEE:", p.TDEE)
	fmt.Fprintf(w, "  %-16s %6d kcal\n", "Target:", p.TargetCalories)
	fmt.Fprintf(w, "  %-16s %6d g\n", "Protein:", p.ProteinGrams)
	fmt.Fprintf(w, "  %-16s %6d g\n", "Carbs:", p.CarbsGrams)
	fmt.Fprintf(w, "  %-16s %6d g\n", "Fat:", p.FatGrams)
	fmt.Fprintf(w, "  %-16s %6d oz\n", "Water:", p.WaterOz)
	if p.CarbsClamped {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  note: protein and fat exceed the calorie target; carbs set to 0")
	}
}

func printOptions(w io.Writer, set optionSet) {
	fmt.Fprintln(w, "Activity levels:")
	for _, o := range set.ActivityLevels {
		fmt.Fprintf(w, "  %-14s %s\n", o.Value, o.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Goals:")
	for _, o := range set.Goals {
		fmt.Fprintf(w, "  %-14s %s\n", o.Value, o.Description)
	}
}
