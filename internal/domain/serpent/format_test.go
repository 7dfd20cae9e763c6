package serpent

import "testing"

func TestFormatNumber(t *testing.T) {
	eng := testEngine()
	cases := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{7.5, "7.5"},
		{12.34, "12.3"},
		{42, "42.0"},
		{123.4, "123"},
		{999, "999"},
		{1_234, "1.23K"},
		{12_345, "12.3K"},
		{123_456, "123K"},
		{1_500_000, "1.50M"},
		{2e9, "2.00B"},
		{3.2e12, "3.20T"},
		{-1_234, "-1.23K"},
	}
	for _, tc := range cases {
		if got := eng.FormatNumber(tc.n); got != tc.want {
			t.Fatalf("format(%v): expected %q, got=%q", tc.n, tc.want, got)
		}
	}
}

func TestStageNameClamped(t *testing.T) {
	eng := testEngine()
	if got := eng.StageName(-1); got != "Hatchling" {
		t.Fatalf("expected Hatchling, got=%q", got)
	}
	if got := eng.StageName(2); got != "Local Predator" {
		t.Fatalf("expected Local Predator, got=%q", got)
	}
	if got := eng.StageName(99); got != "Cosmic Scale" {
		t.Fatalf("expected Cosmic Scale, got=%q", got)
	}
}
