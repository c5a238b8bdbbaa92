package crossref

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/refid"
)

// FlexibleString can unmarshal from either string or number JSON values.
// CSL-JSON emitters disagree about whether volume and issue are strings.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Work is a CSL-JSON item as served by doi.org content negotiation.
type Work struct {
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	ContainerTitle string         `json:"container-title"`
	Author         []Name         `json:"author"`
	Editor         []Name         `json:"editor"`
	Issued         DateParts      `json:"issued"`
	Volume         FlexibleString `json:"volume"`
	Issue          FlexibleString `json:"issue"`
	Page           string         `json:"page"`
	Publisher      string         `json:"publisher"`
	PublisherPlace string         `json:"publisher-place"`
	DOI            string         `json:"DOI"`
	URL            string         `json:"URL"`
}

// Name is a CSL-JSON contributor name.
type Name struct {
	Family  string `json:"family"`
	Given   string `json:"given"`
	Literal string `json:"literal"`
}

// DateParts is a CSL-JSON date: [[year, month, day]] with trailing parts
// optional.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the year, or 0 when absent.
func (d DateParts) Year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// ToReference converts a resolved work into a reference, with the same ID
// scheme the parser uses.
func (w *Work) ToReference() reference.Reference {
	ref := reference.Reference{
		Type:    workType(w),
		Authors: convertNames(w.Author),
		Title:   reference.Plain(w.Title),
		DOI:     w.DOI,
	}

	if year := w.Issued.Year(); year != 0 {
		ref.Date = &reference.Date{Year: year}
	}

	if w.ContainerTitle != "" {
		container := reference.Reference{
			Title:   reference.Plain(w.ContainerTitle),
			Volume:  w.Volume.String(),
			Issue:   w.Issue.String(),
			Editors: convertNames(w.Editor),
		}
		ref.IsPartOf = &container
	}

	if w.Publisher != "" {
		pub := reference.NewOrganization(w.Publisher)
		pub.Address = w.PublisherPlace
		if ref.IsPartOf != nil {
			ref.IsPartOf.Publisher = &pub
		} else {
			ref.Publisher = &pub
		}
	}

	applyPage(&ref, w.Page)

	ref.ID = refid.Generate(ref.Authors, false, ref.Year(), "")
	return ref
}

// workType maps CSL-JSON item types onto the parser's work types.
func workType(w *Work) reference.WorkType {
	switch w.Type {
	case "article-journal", "article", "article-magazine", "article-newspaper", "paper-conference":
		return reference.Article
	case "book", "monograph", "report", "thesis":
		return reference.Book
	case "chapter", "entry", "entry-encyclopedia":
		return reference.Chapter
	case "webpage", "post", "post-weblog", "dataset":
		return reference.WebPage
	}
	if w.ContainerTitle != "" {
		return reference.Article
	}
	return reference.Book
}

func convertNames(names []Name) []reference.Author {
	var authors []reference.Author
	for _, n := range names {
		if n.Literal != "" {
			authors = append(authors, reference.NewOrganization(n.Literal))
			continue
		}
		if n.Family == "" && n.Given == "" {
			continue
		}
		authors = append(authors, reference.NewPerson(n.Family, n.Given))
	}
	return authors
}

// applyPage splits a CSL page expression ("45-67", "e0245312") into the
// reference's page fields.
func applyPage(ref *reference.Reference, page string) {
	page = strings.TrimSpace(page)
	if page == "" {
		return
	}

	for _, dash := range []string{"-", "–", "—"} {
		if start, end, ok := strings.Cut(page, dash); ok {
			s := reference.ParsePage(strings.TrimSpace(start))
			e := reference.ParsePage(strings.TrimSpace(end))
			ref.PageStart = &s
			ref.PageEnd = &e
			return
		}
	}

	if _, err := strconv.Atoi(page); err == nil {
		p := reference.ParsePage(page)
		ref.PageStart = &p
		return
	}
	ref.Pagination = page
}
