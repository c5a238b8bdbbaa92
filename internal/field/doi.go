package field

import (
	"strings"

	"github.com/refsift/refsift/internal/parse"
)

// Locator is the result of the combined DOI-or-URL parser. Exactly one
// field is set: a DOI string never also appears as a URL.
type Locator struct {
	DOI string
	URL string
}

// doiHosts are the host prefixes of DOI resolver URLs, tried longest first.
var doiHosts = []string{
	"https://dx.doi.org/",
	"https://www.doi.org/",
	"https://doi.org/",
	"http://dx.doi.org/",
	"http://www.doi.org/",
	"http://doi.org/",
	"dx.doi.org/",
	"www.doi.org/",
	"doi.org/",
}

// DOI parses a DOI in any of its common renditions: a resolver URL
// ("https://doi.org/10.1234/x"), a prefixed form ("doi:10.1234/x",
// "DOI: 10.1234/x"), or a bare registrant form ("10.1234/x"). The returned
// value is always the bare DOI.
func DOI(in string) (string, string, error) {
	for _, host := range doiHosts {
		if len(in) >= len(host) && strings.EqualFold(in[:len(host)], host) {
			doi, rest, err := bareDOI(in[len(host):])
			if err != nil {
				return "", in, parse.ErrNoMatch
			}
			return doi, rest, nil
		}
	}
	if _, rest, err := parse.LitFold("doi:")(in); err == nil {
		doi, rest, err := bareDOI(parse.SkipSpace(rest))
		if err != nil {
			return "", in, parse.ErrNoMatch
		}
		return doi, rest, nil
	}
	return bareDOI(in)
}

// bareDOI parses "10." + a 4-9 digit registrant + "/" + suffix. The suffix
// accepts letters, digits, the punctuation set "-_.;/:", and one level of
// balanced parentheses. Trailing sentence punctuation is stripped.
func bareDOI(in string) (string, string, error) {
	if !strings.HasPrefix(in, "10.") {
		return "", in, parse.ErrNoMatch
	}
	registrant, rest, err := parse.Digits(4, 9)(in[len("10."):])
	if err != nil {
		return "", in, parse.ErrNoMatch
	}
	if !strings.HasPrefix(rest, "/") {
		return "", in, parse.ErrNoMatch
	}
	rest = rest[1:]

	end := 0
	depth := 0
	for end < len(rest) {
		c := rest[end]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == ';' || c == '/' || c == ':':
		case c == '(' && depth == 0:
			depth++
		case c == ')' && depth == 1:
			depth--
		default:
			goto done
		}
		end++
	}
done:
	suffix := rest[:end]
	if depth != 0 {
		// Unbalanced opening paren: back off to before it.
		if i := strings.LastIndexByte(suffix, '('); i >= 0 {
			suffix = suffix[:i]
		}
	}
	suffix = strings.TrimRight(suffix, ".,;")
	if suffix == "" {
		return "", in, parse.ErrNoMatch
	}
	doi := "10." + registrant + "/" + suffix
	return doi, in[len(doi):], nil
}

// URL parses an http or https URL, stripping trailing sentence punctuation.
func URL(in string) (string, string, error) {
	if !strings.HasPrefix(in, "http://") && !strings.HasPrefix(in, "https://") {
		return "", in, parse.ErrNoMatch
	}
	end := 0
	for end < len(in) && in[end] != ' ' && in[end] != '\t' && in[end] != '\n' && in[end] != '\r' {
		end++
	}
	url := strings.TrimRight(in[:end], ".,;)")
	if len(url) <= len("https://") {
		return "", in, parse.ErrNoMatch
	}
	return url, in[len(url):], nil
}

// DOIOrURL tries the DOI parser first and falls back to a plain URL. DOI
// resolver URLs therefore always come back as DOIs.
func DOIOrURL(in string) (Locator, string, error) {
	if doi, rest, err := DOI(in); err == nil {
		return Locator{DOI: doi}, rest, nil
	}
	if url, rest, err := URL(in); err == nil {
		return Locator{URL: url}, rest, nil
	}
	return Locator{}, in, parse.ErrNoMatch
}
