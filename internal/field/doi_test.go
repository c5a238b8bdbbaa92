package field

import "testing"

func TestDOI(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		doi     string
		rest    string
		wantErr bool
	}{
		{name: "resolver url", in: "https://doi.org/10.1234/abc rest", doi: "10.1234/abc", rest: " rest"},
		{name: "dx resolver", in: "dx.doi.org/10.1234/abc", doi: "10.1234/abc", rest: ""},
		{name: "prefixed lowercase", in: "doi:10.1234/x,", doi: "10.1234/x", rest: ","},
		{name: "prefixed with space", in: "DOI: 10.1021/jacs.0c01234", doi: "10.1021/jacs.0c01234", rest: ""},
		{name: "bare", in: "10.1234/abc.def. Next", doi: "10.1234/abc.def", rest: ". Next"},
		{name: "balanced parens", in: "10.1016/0022-2836(81)90087-5", doi: "10.1016/0022-2836(81)90087-5", rest: ""},
		{name: "unbalanced paren backs off", in: "10.1234/oops(trailing", doi: "10.1234/oops", rest: "(trailing"},
		{name: "trailing punctuation stripped", in: "10.1234/x;", doi: "10.1234/x", rest: ";"},
		{name: "registrant too short", in: "10.123/x", wantErr: true},
		{name: "wrong directory prefix", in: "11.1234/x", wantErr: true},
		{name: "no suffix", in: "10.1234/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doi, rest, err := DOI(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DOI(%q) = %q, want error", tt.in, doi)
				}
				return
			}
			if err != nil {
				t.Fatalf("DOI(%q) error: %v", tt.in, err)
			}
			if doi != tt.doi || rest != tt.rest {
				t.Errorf("DOI(%q) = (%q, %q), want (%q, %q)", tt.in, doi, rest, tt.doi, tt.rest)
			}
		})
	}
}

func TestURL(t *testing.T) {
	url, rest, err := URL("https://example.com/page. Next")
	if err != nil {
		t.Fatalf("URL error: %v", err)
	}
	if url != "https://example.com/page" || rest != ". Next" {
		t.Errorf("URL = (%q, %q)", url, rest)
	}
	if _, _, err := URL("ftp://example.com"); err == nil {
		t.Error("URL accepted non-http scheme")
	}
	if _, _, err := URL("https://"); err == nil {
		t.Error("URL accepted bare scheme")
	}
}

func TestDOIOrURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		doi  string
		url  string
	}{
		{name: "resolver url is a doi", in: "https://doi.org/10.1234/example", doi: "10.1234/example"},
		{name: "bare doi", in: "10.1234/example", doi: "10.1234/example"},
		{name: "plain url", in: "https://example.com/x", url: "https://example.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, _, err := DOIOrURL(tt.in)
			if err != nil {
				t.Fatalf("DOIOrURL(%q) error: %v", tt.in, err)
			}
			if loc.DOI != tt.doi || loc.URL != tt.url {
				t.Errorf("DOIOrURL(%q) = %+v, want doi %q url %q", tt.in, loc, tt.doi, tt.url)
			}
			if loc.DOI != "" && loc.URL != "" {
				t.Error("both DOI and URL populated")
			}
		})
	}
}
