package field

import "testing"

func TestTitlePeriod(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		title   string
		rest    string
		wantErr bool
	}{
		{name: "simple", in: "Understanding Things. Rest", title: "Understanding Things", rest: ". Rest"},
		{name: "escaped dot kept", in: `Escaped \. dot. Rest`, title: "Escaped . dot", rest: ". Rest"},
		{name: "no terminator", in: "No terminator here", wantErr: true},
		{name: "empty before terminator", in: " . x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, rest, err := TitlePeriod(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TitlePeriod(%q) = %q, want error", tt.in, title)
				}
				return
			}
			if err != nil {
				t.Fatalf("TitlePeriod(%q) error: %v", tt.in, err)
			}
			if title != tt.title || rest != tt.rest {
				t.Errorf("TitlePeriod(%q) = (%q, %q), want (%q, %q)", tt.in, title, rest, tt.title, tt.rest)
			}
		})
	}
}

func TestTitleSemicolon(t *testing.T) {
	title, rest, err := TitleSemicolon("Organic Structures; Wiley: New York")
	if err != nil {
		t.Fatalf("TitleSemicolon error: %v", err)
	}
	if title != "Organic Structures" || rest != "; Wiley: New York" {
		t.Errorf("TitleSemicolon = (%q, %q)", title, rest)
	}
}

func TestTitleQuoted(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		title   string
		rest    string
		wantErr bool
	}{
		{name: "straight quotes", in: `"A Title." Rest`, title: "A Title", rest: " Rest"},
		{name: "trailing comma trimmed", in: `"A Title," Rest`, title: "A Title", rest: " Rest"},
		{name: "smart quotes", in: "“Smart quotes.” x", title: "Smart quotes", rest: " x"},
		{name: "mixed closer", in: `"Mixed” x`, title: "Mixed", rest: " x"},
		{name: "unquoted", in: "No quote here", wantErr: true},
		{name: "unterminated", in: `"Never closes`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, rest, err := TitleQuoted(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("TitleQuoted(%q) = %q, want error", tt.in, title)
				}
				return
			}
			if err != nil {
				t.Fatalf("TitleQuoted(%q) error: %v", tt.in, err)
			}
			if title != tt.title || rest != tt.rest {
				t.Errorf("TitleQuoted(%q) = (%q, %q), want (%q, %q)", tt.in, title, rest, tt.title, tt.rest)
			}
		})
	}
}
