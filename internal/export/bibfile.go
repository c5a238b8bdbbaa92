package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/refsift/refsift/internal/reference"
)

// BibIndex records the citation keys and DOIs already present in a .bib
// file, so exports can skip entries the file has.
type BibIndex struct {
	keys map[string]bool
	dois map[string]bool
}

// Has reports whether the reference is already in the file. DOI is the
// primary match; the citation key is the fallback.
func (idx *BibIndex) Has(ref reference.Reference) bool {
	if ref.DOI != "" && idx.dois[normalizeDOI(ref.DOI)] {
		return true
	}
	return idx.keys[ref.ID]
}

func (idx *BibIndex) add(ref reference.Reference) {
	idx.keys[ref.ID] = true
	if ref.DOI != "" {
		idx.dois[normalizeDOI(ref.DOI)] = true
	}
}

var (
	bibEntryStart = regexp.MustCompile(`@\w+\{([^,]+),`)
	bibDOIField   = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[{"]([^}"]+)[}"]`)
)

// ParseBibFile indexes an existing .bib file. A missing file yields an
// empty index.
func ParseBibFile(path string) (*BibIndex, error) {
	idx := &BibIndex{
		keys: make(map[string]bool),
		dois: make(map[string]bool),
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := bibEntryStart.FindStringSubmatch(line); len(m) > 1 {
			idx.keys[strings.TrimSpace(m[1])] = true
		}
		if m := bibDOIField.FindStringSubmatch(line); len(m) > 1 {
			if doi := normalizeDOI(m[1]); doi != "" {
				idx.dois[doi] = true
			}
		}
	}

	return idx, scanner.Err()
}

// normalizeDOI normalizes a DOI for comparison: resolver-URL and "doi:"
// prefixes dropped, lowercased.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// AppendNew appends the references not already present in the .bib file,
// deduplicating by DOI first and citation key second. Duplicates within
// refs are also collapsed. Returns how many entries were appended.
func AppendNew(path string, refs []reference.Reference) (int, error) {
	idx, err := ParseBibFile(path)
	if err != nil {
		return 0, err
	}

	var entries []string
	for _, ref := range refs {
		if idx.Has(ref) {
			continue
		}
		entries = append(entries, ToBibTeX(ref))
		idx.add(ref)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return 0, err
	}
	if _, err := file.WriteString("\n" + strings.Join(entries, "\n")); err != nil {
		file.Close()
		return 0, err
	}
	return len(entries), file.Close()
}
