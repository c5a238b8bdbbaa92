package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// LNCS (Springer proceedings) style: a colon after the author list, the
// year parenthesised at the very end, "In:" before the proceedings volume.
//
//	Smith, J., Jones, B.: Title of paper. In: Editor, E. (eds.) Proc. of
//	Things. LNCS, vol. 1234, pp. 1-10. Springer, Heidelberg (2020)

// LNCS tries all LNCS work-type shapes, most specific first. The style has
// no conventional web-page shape.
var LNCS = parse.Alt(LNCSChapter, LNCSArticle, LNCSBook)

// lncsFront parses the "Authors:" prefix shared by all LNCS shapes.
func lncsFront(in string) (field.AuthorList, string, error) {
	list, rest, err := field.AuthorsFamilyInitials(in)
	if err != nil {
		org, after, oerr := field.OrganizationAuthor(in)
		if oerr != nil {
			return field.AuthorList{}, in, err
		}
		list = field.AuthorList{Authors: []reference.Author{org}}
		rest = after
	}
	rest = parse.SkipSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return field.AuthorList{}, in, parse.ErrNoMatch
	}
	return list, parse.SkipSpace(rest[1:]), nil
}

// LNCSArticle parses an LNCS-formatted journal article.
func LNCSArticle(in string) (reference.Reference, string, error) {
	list, rest, err := lncsFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := titleWords(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	volume, rest, err := field.BareNumber(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	issue, rest, _ := parse.Opt(field.ParenIssue)(rest)
	var pages field.Pages
	_, rest, _ = field.SepOpt(rest)
	if pg, after, err := field.PageRange(rest); err == nil && pg.Start != nil {
		pages = pg
		rest = after
	}
	ys, rest, err := parenYear(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Article, list, title, ys)
	ref.IsPartOf = container(journal, volume, issue)
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// LNCSChapter parses a paper in an LNCS proceedings volume.
func LNCSChapter(in string) (reference.Reference, string, error) {
	list, rest, err := lncsFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in:")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	editors, rest, _ := parse.Opt(field.AuthorsFamilyInitials)(rest)
	_, rest, _ = field.SepOpt(rest)
	rest, edMarker := eatEditorMarker(rest)
	if len(editors.Authors) > 0 && !edMarker {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	proceedings, rest, err := untilAny(rest, ".,(")
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var volume string
	if after, ok := eatPrefixFold(rest, "lncs"); ok {
		_, rest, _ = field.SepOpt(after)
	}
	if v, after, err := field.VolumeKeyword(rest); err == nil {
		volume = v
		_, rest, _ = field.SepOpt(after)
	}
	var pages field.Pages
	if pg, after, err := field.PagesPrefixed(rest); err == nil {
		pages = pg
		_, rest, _ = field.SepOpt(after)
	}
	pub, rest, _ := parse.Opt(field.CommaPublisher)(rest)
	ys, rest, err := parenYear(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Chapter, list, title, ys)
	ref.IsPartOf = container(proceedings, volume, "")
	ref.IsPartOf.Editors = editors.Authors
	ref.Publisher = pub.Organization()
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// LNCSBook parses an LNCS-formatted book: title, "Publisher, Place (year)".
func LNCSBook(in string) (reference.Reference, string, error) {
	list, rest, err := lncsFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	pub, rest, err := field.CommaPublisher(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	ys, rest, err := parenYear(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Book, list, title, ys)
	ref.Publisher = pub.Organization()
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}
