package utils

import (
	"strings"
	"testing"
)

func TestFuzzyMatchMaterial(t *testing.T) {
	tests := []struct {
		name   string
		search string
		text   string
		want   bool
	}{
		{"direct match", "marble", "Premium Italian marble for flooring", true},
		{"case insensitive", "GRANITE", "Granite Countertop", true},
		{"alias match", "wood", "Hardwood Doors", true},
		{"alias for windows", "window", "UPVC Sliding Frames", true},
		{"empty term matches", "", "anything", true},
		{"no match", "bamboo", "Textured Paint", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FuzzyMatchMaterial(tt.search, tt.text); got != tt.want {
				t.Errorf("FuzzyMatchMaterial(%q, %q) = %v, want %v", tt.search, tt.text, got, tt.want)
			}
		})
	}
}

func TestMaterialPatterns(t *testing.T) {
	got := MaterialPatterns("Marble")
	if len(got) == 0 || got[0] != "marble" {
		t.Fatalf("MaterialPatterns(Marble) = %v", got)
	}
	seen := map[string]bool{}
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate pattern %q in %v", p, got)
		}
		seen[p] = true
	}
	if !seen["italian marble"] {
		t.Errorf("expected alias italian marble in %v", got)
	}

	if got := MaterialPatterns("  "); got != nil {
		t.Errorf("MaterialPatterns(blank) = %v, want nil", got)
	}
}

func TestBuildFuzzyMaterialQuery(t *testing.T) {
	conds, params, next := BuildFuzzyMaterialQuery([]string{"bamboo", "marble"}, 3)

	if len(conds) != 2 {
		t.Fatalf("got %d conditions, want 2", len(conds))
	}
	wantParams := 1 + len(MaterialPatterns("marble"))
	if len(params) != wantParams {
		t.Fatalf("got %d params, want %d", len(params), wantParams)
	}
	if next != 3+wantParams {
		t.Errorf("next index = %d, want %d", next, 3+wantParams)
	}
	if !strings.Contains(conds[0], "$3") || strings.Contains(conds[0], "$4") {
		t.Errorf("first condition = %q, want only $3", conds[0])
	}
	if !strings.Contains(conds[1], "$4") {
		t.Errorf("second condition = %q, want to start at $4", conds[1])
	}
	if params[0] != "%bamboo%" {
		t.Errorf("params[0] = %v, want %%bamboo%%", params[0])
	}

	// Parameter numbers past 9 must stay two digits
	conds, _, _ = BuildFuzzyMaterialQuery([]string{"bamboo"}, 12)
	if !strings.Contains(conds[0], "$12") {
		t.Errorf("condition = %q, want $12", conds[0])
	}
}
