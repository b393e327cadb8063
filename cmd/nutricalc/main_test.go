package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"lg/nutrichat-api/nutrition"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cmd = profileCmd()
	if len(args) > 0 && args[0] == "options" {
		cmd = optionsCmd()
		args = args[1:]
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var referenceArgs = []string{
	"--weight", "180", "--height", "70", "--age", "30", "--sex", "male",
	"--activity", "moderate", "--goal", "maintenance",
}

func TestProfile_Formats(t *testing.T) {
	tests := []struct {
		format string
		decode func(string) (nutrition.Profile, error)
	}{
		{formatJSON, func(s string) (nutrition.Profile, error) {
			var p nutrition.Profile
			return p, json.Unmarshal([]byte(s), &p)
		}},
		{formatYAML, func(s string) (nutrition.Profile, error) {
			var p nutrition.Profile
			return p, yaml.Unmarshal([]byte(s), &p)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCmd(t, append(referenceArgs, "--format", tt.format)...)
			if err != nil {
				t.Fatalf("execute: %v\n%s", err, out)
			}
			p, err := tt.decode(out)
			if err != nil {
				t.Fatalf("decode: %v\n%s", err, out)
			}
			if p.TargetCalories != 2764 || p.ProteinGrams != 147 || p.WaterOz != 108 || p.Sex != "male" {
				t.Errorf("unexpected profile: %+v", p)
			}
		})
	}
}

func TestProfile_Text(t *testing.T) {
	out, err := runCmd(t, referenceArgs...)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"Nutrition Profile", "2764 kcal", "147 g", "108 oz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProfile_Metric(t *testing.T) {
	// 81.6466 kg and 177.8 cm are 180 lbs and 70 in.
	args := []string{"--weight", "81.6466", "--height", "177.8", "--age", "30", "--sex", "male", "--metric", "--format", "json"}
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var p nutrition.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.TargetCalories != 2764 {
		t.Errorf("TargetCalories = %d, want 2764", p.TargetCalories)
	}
}

func TestProfile_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"invalid sex", []string{"--weight", "180", "--height", "70", "--age", "30", "--sex", "other"}},
		{"too young", []string{"--weight", "180", "--height", "70", "--age", "12", "--sex", "female"}},
		{"infinite weight", []string{"--weight", "Inf", "--height", "70", "--age", "30", "--sex", "male"}},
		{"missing flag", []string{"--weight", "180"}},
		{"bad format", append(append([]string{}, referenceArgs...), "--format", "xml")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := runCmd(t, tc.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	out, err := runCmd(t, "options", "--format", "yaml")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var set optionSet
	if err := yaml.Unmarshal([]byte(out), &set); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(set.ActivityLevels) != 5 || len(set.Goals) != 4 {
		t.Errorf("unexpected options: %+v", set)
	}

	out, err = runCmd(t, "options")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "very_active") || !strings.Contains(out, "general_health") {
		t.Errorf("text output missing values:\n%s", out)
	}
}
