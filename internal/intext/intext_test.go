package intext

import (
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ids  []string
	}{
		{
			name: "single citation",
			in:   "As shown before (Smith, 2020), the effect holds.",
			ids:  []string{"smith-2020"},
		},
		{
			name: "no comma",
			in:   "As shown before (Smith 2020).",
			ids:  []string{"smith-2020"},
		},
		{
			name: "two authors",
			in:   "(Smith & Jones, 2020)",
			ids:  []string{"smith-and-jones-2020"},
		},
		{
			name: "and separator",
			in:   "(Smith and Jones, 2019)",
			ids:  []string{"smith-and-jones-2019"},
		},
		{
			name: "et al",
			in:   "(Brown et al., 2019)",
			ids:  []string{"brown-et-al-2019"},
		},
		{
			name: "suffix letter",
			in:   "(Taylor, 2020a)",
			ids:  []string{"taylor-2020a"},
		},
		{
			name: "semicolon group",
			in:   "(Smith & Jones, 2020a; Brown et al., 2019)",
			ids:  []string{"smith-and-jones-2020a", "brown-et-al-2019"},
		},
		{
			name: "year below range rejected",
			in:   "(Smith 1199)",
			ids:  nil,
		},
		{
			name: "year above range rejected",
			in:   "(Smith 2051)",
			ids:  nil,
		},
		{
			name: "plain parenthetical ignored",
			in:   "(see the appendix)",
			ids:  nil,
		},
		{
			name: "multiple groups in order",
			in:   "First (Smith, 2020) and later (Jones, 2021).",
			ids:  []string{"smith-2020", "jones-2021"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cites := Scan(tt.in)
			if len(cites) != len(tt.ids) {
				t.Fatalf("got %d citations (%+v), want %d", len(cites), cites, len(tt.ids))
			}
			for i, want := range tt.ids {
				if cites[i].ID != want {
					t.Errorf("citation %d id = %q, want %q", i, cites[i].ID, want)
				}
			}
		})
	}
}

func TestScanMatchesBibliographyID(t *testing.T) {
	cites := Scan("(Van Der Berg, 2019)")
	if len(cites) != 1 {
		t.Fatalf("got %d citations, want 1", len(cites))
	}
	if cites[0].ID != "van-der-berg-2019" {
		t.Errorf("id = %q, want %q", cites[0].ID, "van-der-berg-2019")
	}
}
