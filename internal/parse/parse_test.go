package parse

import (
	"errors"
	"testing"
	"unicode"
)

func TestAlt_FirstSuccessWins(t *testing.T) {
	p := Alt(Lit("ab"), Lit("a"))
	v, rest, err := p("abc")
	if err != nil {
		t.Fatalf("Alt() error = %v", err)
	}
	if v != "ab" || rest != "c" {
		t.Errorf("Alt() = (%q, %q), want (%q, %q)", v, rest, "ab", "c")
	}
}

func TestAlt_FailureConsumesNothing(t *testing.T) {
	p := Alt(Lit("x"), Lit("y"))
	_, rest, err := p("abc")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Alt() error = %v, want ErrNoMatch", err)
	}
	if rest != "abc" {
		t.Errorf("Alt() rest = %q, want input unconsumed", rest)
	}
}

func TestOpt(t *testing.T) {
	p := Opt(Lit("x"))
	v, rest, err := p("abc")
	if err != nil || v != "" || rest != "abc" {
		t.Errorf("Opt() = (%q, %q, %v), want zero value with no consumption", v, rest, err)
	}
	v, rest, err = p("xyz")
	if err != nil || v != "x" || rest != "yz" {
		t.Errorf("Opt() = (%q, %q, %v), want match", v, rest, err)
	}
}

func TestLitFold(t *testing.T) {
	p := LitFold("doi:")
	for _, in := range []string{"doi:10.1", "DOI:10.1", "Doi:10.1"} {
		_, rest, err := p(in)
		if err != nil {
			t.Errorf("LitFold(%q) error = %v", in, err)
			continue
		}
		if rest != "10.1" {
			t.Errorf("LitFold(%q) rest = %q, want %q", in, rest, "10.1")
		}
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		in       string
		min, max int
		want     string
		wantErr  bool
	}{
		{"2023.", 4, 4, "2023", false},
		{"20234", 4, 4, "2023", false},
		{"202", 4, 4, "", true},
		{"12345", 4, 9, "12345", false},
		{"abc", 1, 0, "", true},
	}
	for _, tt := range tests {
		got, _, err := Digits(tt.min, tt.max)(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Digits(%d,%d)(%q) error = %v, wantErr %v", tt.min, tt.max, tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Digits(%d,%d)(%q) = %q, want %q", tt.min, tt.max, tt.in, got, tt.want)
		}
	}
}

func TestTakeWhile1(t *testing.T) {
	p := TakeWhile1(unicode.IsLetter)
	v, rest, err := p("abc123")
	if err != nil || v != "abc" || rest != "123" {
		t.Errorf("TakeWhile1() = (%q, %q, %v)", v, rest, err)
	}
	if _, _, err := p("123"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("TakeWhile1() on no leading match: error = %v, want ErrNoMatch", err)
	}
}

func TestCountAlnum(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a1 b2.", 4},
		{"---", 0},
		{"étude 2023", 9},
	}
	for _, tt := range tests {
		if got := CountAlnum(tt.in); got != tt.want {
			t.Errorf("CountAlnum(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
