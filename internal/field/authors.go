package field

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// AuthorList is the result of an author-list parser. EtAl records that the
// list was truncated with an "et al." marker; the identifier generator
// treats a truncated list as three-or-more authors.
type AuthorList struct {
	Authors []reference.Author
	EtAl    bool
}

// Lowercase particles allowed inside family names ("Van Der Berg",
// "de la Cruz").
var nameParticles = map[string]bool{
	"van": true, "von": true, "der": true, "den": true, "de": true,
	"da": true, "del": true, "della": true, "di": true, "du": true,
	"la": true, "le": true, "ter": true, "ten": true, "ibn": true,
	"bin": true, "al": true, "el": true,
}

// Lowercase connectives allowed inside organization names.
var orgConnectives = map[string]bool{
	"of": true, "for": true, "the": true, "and": true, "on": true,
	"in": true, "to": true, "des": true, "de": true,
}

// AuthorsFamilyInitials parses a family-name-first list with dotted
// initials: "Smith, J. A., & Jones, B." Used by APA, ACS, Chicago
// author-date, LNCS, and the astrophysics style.
func AuthorsFamilyInitials(in string) (AuthorList, string, error) {
	return authorSequence(in, personFamilyInitials)
}

// AuthorsFamilyGiven parses a family-name-first list with full given names:
// "Smith, John, and Jane Doe". The first author is inverted; later authors
// appear given-name first. Used by MLA and Chicago humanities styles.
func AuthorsFamilyGiven(in string) (AuthorList, string, error) {
	first, rest, err := personFamilyGiven(in)
	if err != nil {
		return AuthorList{}, in, err
	}
	list := AuthorList{Authors: []reference.Author{first}}
	for {
		if consumed, after := etAlMarker(rest); consumed {
			list.EtAl = true
			rest = after
			break
		}
		after, ok := listSep(rest)
		if !ok {
			break
		}
		person, after2, err := parse.Alt(personGivenFamily, personFamilyGiven)(after)
		if err != nil {
			break
		}
		list.Authors = append(list.Authors, person)
		rest = after2
	}
	return list, rest, nil
}

// AuthorsInitialsFirst parses an initials-first list: "J. A. Smith and
// B. Jones". Used by IEEE.
func AuthorsInitialsFirst(in string) (AuthorList, string, error) {
	return authorSequence(in, personInitialsFamily)
}

// AuthorsGivenFamily parses a given-name-first list of full names:
// "Jane Doe and John Smith". Used for "edited by" editor lists.
func AuthorsGivenFamily(in string) (AuthorList, string, error) {
	return authorSequence(in, personGivenFamily)
}

// AuthorsVancouver parses a family-plus-undotted-initials list:
// "Smith JA, Jones B". Used by Vancouver.
func AuthorsVancouver(in string) (AuthorList, string, error) {
	return authorSequence(in, personFamilyCaps)
}

// Authors is the generic superset used outside a specific style grammar: it
// tries the family-first variants, the initials-first variant, the
// Vancouver variant, and finally a single organization author.
func Authors(in string) (AuthorList, string, error) {
	list, rest, err := parse.Alt(
		AuthorsFamilyInitials,
		AuthorsInitialsFirst,
		AuthorsVancouver,
		AuthorsFamilyGiven,
	)(in)
	if err == nil {
		return list, rest, nil
	}
	org, rest, err := OrganizationAuthor(in)
	if err != nil {
		return AuthorList{}, in, err
	}
	return AuthorList{Authors: []reference.Author{org}}, rest, nil
}

// OrganizationAuthor parses an organization acting as an author: two or
// more capitalized-or-connective words, or one all-caps acronym, ending at
// the next sentence terminator.
func OrganizationAuthor(in string) (reference.Author, string, error) {
	rest := in
	var words []string
	for {
		word, after, err := nameWord(rest)
		if err != nil {
			break
		}
		if len(words) > 0 && !startsUpper(word) && !orgConnectives[strings.ToLower(word)] {
			break
		}
		if len(words) == 0 && !startsUpper(word) {
			break
		}
		words = append(words, word)
		next := parse.SkipSpace(after)
		if next == after || next == "" {
			rest = after
			break
		}
		r, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsLetter(r) {
			rest = after
			break
		}
		rest = next
	}
	if len(words) == 0 {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	if len(words) == 1 && !isAcronym(words[0]) {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	return reference.NewOrganization(strings.Join(words, " ")), rest, nil
}

// authorSequence parses one or more persons with a shared item parser,
// separated by comma/ampersand/"and"/semicolon combinations, with optional
// trailing "et al.".
func authorSequence(in string, item parse.Parser[reference.Author]) (AuthorList, string, error) {
	first, rest, err := item(in)
	if err != nil {
		return AuthorList{}, in, err
	}
	list := AuthorList{Authors: []reference.Author{first}}
	for {
		if consumed, after := etAlMarker(rest); consumed {
			list.EtAl = true
			rest = after
			break
		}
		after, ok := listSep(rest)
		if !ok {
			break
		}
		person, after2, err := item(after)
		if err != nil {
			break
		}
		list.Authors = append(list.Authors, person)
		rest = after2
	}
	return list, rest, nil
}

// listSep consumes one separator between list items: a comma or semicolon,
// an ampersand, the word "and", or a comma followed by either.
func listSep(in string) (string, bool) {
	rest := parse.SkipSpace(in)
	punct := false
	if strings.HasPrefix(rest, ",") || strings.HasPrefix(rest, ";") {
		rest = parse.SkipSpace(rest[1:])
		punct = true
	}
	switch {
	case strings.HasPrefix(rest, "&"):
		return parse.SkipSpace(rest[1:]), true
	case hasWordPrefix(rest, "and"):
		return parse.SkipSpace(rest[3:]), true
	case punct:
		return rest, true
	}
	return in, false
}

// hasWordPrefix reports whether in starts with the word, case-insensitively,
// at a word boundary.
func hasWordPrefix(in, word string) bool {
	if len(in) < len(word) || !strings.EqualFold(in[:len(word)], word) {
		return false
	}
	return len(in) == len(word) || !isLetterByte(in[len(word)])
}

// etAlMarker consumes "et al." with or without a preceding comma.
func etAlMarker(in string) (bool, string) {
	rest := parse.SkipSpace(in)
	if strings.HasPrefix(rest, ",") {
		rest = parse.SkipSpace(rest[1:])
	}
	if !hasWordPrefix(rest, "et") {
		return false, in
	}
	rest = parse.SkipSpace(rest[2:])
	if !strings.HasPrefix(rest, "al") {
		return false, in
	}
	rest = rest[2:]
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	}
	if rest != "" && isLetterByte(rest[0]) {
		return false, in
	}
	return true, rest
}

// personFamilyInitials parses "Family, I. J." with dotted initials.
func personFamilyInitials(in string) (reference.Author, string, error) {
	family, rest, err := familyComma(in)
	if err != nil {
		return reference.Author{}, in, err
	}
	initials, rest, err := initialsDotted(parse.SkipSpace(rest))
	if err != nil {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	return reference.NewPerson(family, initials), rest, nil
}

// personFamilyGiven parses "Family, Given" with one or more full given-name
// words.
func personFamilyGiven(in string) (reference.Author, string, error) {
	family, rest, err := familyComma(in)
	if err != nil {
		return reference.Author{}, in, err
	}
	given, rest, err := givenWords(parse.SkipSpace(rest))
	if err != nil {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	return reference.NewPerson(family, given), rest, nil
}

// personGivenFamily parses "Given Family" or "Given Middle Family".
func personGivenFamily(in string) (reference.Author, string, error) {
	var words []string
	rest := in
	for len(words) < 3 {
		word, after, err := nameWord(rest)
		if err != nil || !startsUpper(word) || len(word) < 2 {
			break
		}
		words = append(words, word)
		next := parse.SkipSpace(after)
		rest = after
		if next == after {
			break
		}
		r, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsLetter(r) {
			break
		}
		rest = next
	}
	if len(words) < 2 {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	family := words[len(words)-1]
	given := strings.Join(words[:len(words)-1], " ")
	return reference.NewPerson(family, given), rest, nil
}

// personInitialsFamily parses "I. J. Family" as used by IEEE.
func personInitialsFamily(in string) (reference.Author, string, error) {
	initials, rest, err := initialsDotted(in)
	if err != nil {
		return reference.Author{}, in, err
	}
	family, rest, err := familyWords(parse.SkipSpace(rest))
	if err != nil {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	return reference.NewPerson(family, initials), rest, nil
}

// personFamilyCaps parses "Family IJ" with undotted run-together initials
// as used by Vancouver.
func personFamilyCaps(in string) (reference.Author, string, error) {
	family, rest, err := familyWords(in)
	if err != nil {
		return reference.Author{}, in, err
	}
	rest = parse.SkipSpace(rest)
	caps, rest, err := capsRun(rest)
	if err != nil {
		return reference.Author{}, in, parse.ErrNoMatch
	}
	return reference.NewPerson(family, spacedInitials(caps)), rest, nil
}

// familyComma captures a family name terminated by a comma and consumes the
// comma. The name may span several capitalized or particle words.
func familyComma(in string) (string, string, error) {
	comma := strings.IndexByte(in, ',')
	if comma <= 0 || comma > 48 {
		return "", in, parse.ErrNoMatch
	}
	family := strings.TrimSpace(in[:comma])
	if !validFamily(family) {
		return "", in, parse.ErrNoMatch
	}
	return family, in[comma+1:], nil
}

// familyWords captures a family name not terminated by a comma: one to
// three capitalized or particle words, stopping before punctuation.
func familyWords(in string) (string, string, error) {
	var words []string
	rest := in
	for len(words) < 3 {
		word, after, err := nameWord(rest)
		if err != nil {
			break
		}
		if !startsUpper(word) && !nameParticles[strings.ToLower(word)] {
			break
		}
		// A short all-caps run or lone capital is an initials block, not a
		// family word.
		if isAcronym(word) && len(word) <= 3 {
			break
		}
		if len(word) == 1 && startsUpper(word) {
			break
		}
		words = append(words, word)
		next := parse.SkipSpace(after)
		rest = after
		if next == after || next == "" {
			break
		}
		r, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsLetter(r) {
			break
		}
		rest = next
	}
	if len(words) == 0 {
		return "", in, parse.ErrNoMatch
	}
	return strings.Join(words, " "), rest, nil
}

// givenWords captures one or two full given-name words (no initials).
func givenWords(in string) (string, string, error) {
	var words []string
	rest := in
	for len(words) < 2 {
		word, after, err := nameWord(rest)
		if err != nil || !startsUpper(word) || len(word) < 2 {
			break
		}
		words = append(words, word)
		next := parse.SkipSpace(after)
		rest = after
		if next == after {
			break
		}
		r, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsLetter(r) {
			break
		}
		rest = next
	}
	if len(words) == 0 {
		return "", in, parse.ErrNoMatch
	}
	return strings.Join(words, " "), rest, nil
}

// initialsDotted parses dotted initials: "J.", "J. A.", "J.A.", "J.-P.".
func initialsDotted(in string) (string, string, error) {
	rest := in
	var groups []string
	for {
		group, after, ok := initialGroup(rest)
		if !ok {
			break
		}
		groups = append(groups, group)
		rest = after
		next := parse.SkipSpace(after)
		if next == after {
			continue // run-together "J.A."
		}
		if _, _, ok := initialGroup(next); !ok {
			break
		}
		rest = next
	}
	if len(groups) == 0 {
		return "", in, parse.ErrNoMatch
	}
	return strings.Join(groups, " "), rest, nil
}

// initialGroup parses one "X." or hyphenated "X.-Y." group.
func initialGroup(in string) (string, string, bool) {
	r, size := utf8.DecodeRuneInString(in)
	if !unicode.IsUpper(r) || len(in) < size+1 || in[size] != '.' {
		return "", in, false
	}
	group := in[:size+1]
	rest := in[size+1:]
	for strings.HasPrefix(rest, "-") {
		r2, size2 := utf8.DecodeRuneInString(rest[1:])
		if !unicode.IsUpper(r2) || len(rest) < 1+size2+1 || rest[1+size2] != '.' {
			break
		}
		group += rest[:1+size2+1]
		rest = rest[1+size2+1:]
	}
	return group, rest, true
}

// capsRun parses one to three undotted uppercase initials ("JA").
func capsRun(in string) (string, string, error) {
	end := 0
	for end < len(in) && end < 3 && in[end] >= 'A' && in[end] <= 'Z' {
		end++
	}
	if end == 0 {
		return "", in, parse.ErrNoMatch
	}
	// A following lowercase letter means this was a word, not initials.
	if end < len(in) && isLetterByte(in[end]) {
		return "", in, parse.ErrNoMatch
	}
	return in[:end], in[end:], nil
}

// spacedInitials converts "JA" to "J. A.".
func spacedInitials(caps string) string {
	parts := make([]string, 0, len(caps))
	for i := 0; i < len(caps); i++ {
		parts = append(parts, string(caps[i])+".")
	}
	return strings.Join(parts, " ")
}

// nameWord consumes one word of letters, hyphens, and apostrophes.
func nameWord(in string) (string, string, error) {
	r, _ := utf8.DecodeRuneInString(in)
	if !unicode.IsLetter(r) {
		return "", in, parse.ErrNoMatch
	}
	return parse.TakeWhile1(isNameRune)(in)
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || r == '-' || r == '\'' || r == '’'
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func isAcronym(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func validFamily(s string) bool {
	if s == "" {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 4 {
		return false
	}
	for i, word := range words {
		for _, r := range word {
			if !isNameRune(r) {
				return false
			}
		}
		if !startsUpper(word) && !nameParticles[strings.ToLower(word)] {
			return false
		}
		// Initials are not family names.
		if i == 0 && len(word) == 1 {
			return false
		}
	}
	return true
}
