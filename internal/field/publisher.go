package field

import (
	"strings"
	"unicode"

	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// PublisherPlace is a publisher with an optional place of publication.
type PublisherPlace struct {
	Publisher string
	Place     string
}

// Words that mark the publisher side of a "X: Y" pair when the order is
// reversed ("Springer: Heidelberg" rather than "Heidelberg: Springer").
var publisherHints = []string{
	"press", "publishers", "publishing", "books", "verlag",
	"springer", "wiley", "elsevier", "routledge", "macmillan",
}

// ColonPublisher parses a "Place: Publisher" pair terminated by a period,
// semicolon, or end of input. The conventional order puts the place first;
// when the left side carries a publisher hint word the sides are swapped.
func ColonPublisher(in string) (PublisherPlace, string, error) {
	segment, rest := untilTerminator(in)
	colon := strings.Index(segment, ":")
	if colon < 0 {
		return PublisherPlace{}, in, parse.ErrNoMatch
	}
	left := strings.TrimSpace(segment[:colon])
	right := segment[colon+1:]
	// The right side ends at the first comma: a year or page list that
	// follows the publisher is not part of its name.
	if c := strings.Index(right, ","); c >= 0 {
		rest = in[colon+1+c:]
		right = right[:c]
	}
	right = strings.TrimSpace(right)
	if left == "" || right == "" || !startsCapital(left) || !startsCapital(right) {
		return PublisherPlace{}, in, parse.ErrNoMatch
	}
	pp := PublisherPlace{Place: left, Publisher: right}
	if looksLikePublisher(left) && !looksLikePublisher(right) {
		pp = PublisherPlace{Publisher: left, Place: right}
	}
	return pp, rest, nil
}

// CommaPublisher parses a "Publisher, Place" pair as used by Springer-style
// proceedings imprints ("Springer, Heidelberg").
func CommaPublisher(in string) (PublisherPlace, string, error) {
	segment, rest := untilTerminator(in)
	comma := strings.Index(segment, ",")
	if comma < 0 {
		return PublisherPlace{}, in, parse.ErrNoMatch
	}
	publisher := strings.TrimSpace(segment[:comma])
	place := strings.TrimSpace(segment[comma+1:])
	if publisher == "" || place == "" || !startsCapital(publisher) || !startsCapital(place) {
		return PublisherPlace{}, in, parse.ErrNoMatch
	}
	return PublisherPlace{Publisher: publisher, Place: place}, rest, nil
}

// PublisherOnly parses a bare publisher name up to the next terminator.
func PublisherOnly(in string) (PublisherPlace, string, error) {
	segment, rest := untilTerminator(in)
	name := strings.TrimSpace(segment)
	if name == "" || !startsCapital(name) || strings.Contains(name, ":") {
		return PublisherPlace{}, in, parse.ErrNoMatch
	}
	return PublisherPlace{Publisher: name}, rest, nil
}

// Organization converts a PublisherPlace into the publisher author value
// attached to a Reference.
func (pp PublisherPlace) Organization() *reference.Author {
	if pp.Publisher == "" {
		return nil
	}
	org := reference.NewOrganization(pp.Publisher)
	org.Address = pp.Place
	return &org
}

// untilTerminator splits the input at the next period, semicolon, or
// parenthesis, returning the segment before it and the rest starting at
// the terminator.
func untilTerminator(in string) (segment, rest string) {
	end := len(in)
	for i := 0; i < len(in); i++ {
		switch in[i] {
		case '.', ';', '(':
			return in[:i], in[i:]
		}
	}
	return in[:end], ""
}

func startsCapital(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func looksLikePublisher(s string) bool {
	lower := strings.ToLower(s)
	for _, hint := range publisherHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
