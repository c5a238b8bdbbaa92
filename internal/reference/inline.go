package reference

import "strings"

// Inline is one span of rich title text. Titles are kept as spans rather
// than a flat string so downstream renderers can preserve emphasis.
type Inline struct {
	Text string `json:"text"`
	Emph bool   `json:"emph,omitempty"`
}

// Inlines is an ordered sequence of title spans.
type Inlines []Inline

// Plain wraps a bare string as a single unemphasized span. Empty input
// yields a nil sequence.
func Plain(s string) Inlines {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return Inlines{{Text: s}}
}

// String flattens the spans back to plain text.
func (t Inlines) String() string {
	switch len(t) {
	case 0:
		return ""
	case 1:
		return t[0].Text
	}
	var b strings.Builder
	for _, span := range t {
		b.WriteString(span.Text)
	}
	return b.String()
}
