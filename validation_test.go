package main

import "testing"

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":      true,
		"first.last+tag@x.io":   true,
		"":                      false,
		"no-at-sign.com":        false,
		"user@host":             false,
		"user@example.c":        false,
		"spaces in@example.com": false,
	}
	for email, want := range cases {
		if got := validEmail(email); got != want {
			t.Errorf("validEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		pw   string
		want bool
	}{
		{"Secret123", true},
		{"Sh0rt", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}
	for _, tc := range cases {
		t.Run(tc.pw, func(t *testing.T) {
			if got := strongPassword(tc.pw); got != tc.want {
				t.Errorf("strongPassword(%q) = %v, want %v", tc.pw, got, tc.want)
			}
		})
	}
}

func TestValidateLog_Partial(t *testing.T) {
	calories := 2500.0
	if errs := validateLog(logRequest{Calories: &calories}, false); len(errs) != 0 {
		t.Errorf("partial update should pass, got %v", errs)
	}
	if errs := validateLog(logRequest{Calories: &calories}, true); len(errs) != 3 {
		t.Errorf("new entry with only calories should fail date, weight and nutrition, got %v", errs)
	}

	carbs := 1000.0
	if errs := validateLog(logRequest{CarbsG: &carbs}, false); len(errs) != 0 {
		t.Errorf("upper bound is inclusive, got %v", errs)
	}
}
