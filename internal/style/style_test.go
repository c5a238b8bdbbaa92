package style

import (
	"testing"

	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// parseFull runs a grammar and requires it to consume everything.
func parseFull(t *testing.T, g Grammar, in string) reference.Reference {
	t.Helper()
	ref, rest, err := g(in)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parse.CountAlnum(rest) != 0 {
		t.Fatalf("unconsumed input: %q", rest)
	}
	return ref
}

func TestIEEEArticle(t *testing.T) {
	ref := parseFull(t, IEEE,
		`J. A. Smith and B. Jones, "Deep learning for networks," IEEE Trans. Neural Netw., vol. 5, no. 2, pp. 100-110, 2020, doi: 10.1234/abc.`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if got := ref.Title.String(); got != "Deep learning for networks" {
		t.Errorf("Title = %q", got)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "IEEE Trans. Neural Netw." {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.IsPartOf.Volume != "5" || ref.IsPartOf.Issue != "2" {
		t.Errorf("volume/issue = %q/%q", ref.IsPartOf.Volume, ref.IsPartOf.Issue)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 100 || ref.PageEnd == nil || ref.PageEnd.Number != 110 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
	if ref.Year() != 2020 || ref.DOI != "10.1234/abc" {
		t.Errorf("year/doi = %d/%q", ref.Year(), ref.DOI)
	}
	if ref.ID != "smith-and-jones-2020" {
		t.Errorf("ID = %q", ref.ID)
	}
}

func TestIEEEConference(t *testing.T) {
	ref := parseFull(t, IEEE,
		`J. A. Smith, "A method," in Proc. 12th Conf. on Things, 2019, pp. 1-8.`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Proc. 12th Conf. on Things" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.Year() != 2019 || ref.PageStart == nil || ref.PageStart.Number != 1 {
		t.Errorf("year/pages = %d/%v", ref.Year(), ref.PageStart)
	}
}

func TestIEEEBook(t *testing.T) {
	ref := parseFull(t, IEEE,
		`J. A. Smith, Introduction to Systems. Boston: Addison-Wesley, 2019.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Addison-Wesley" || ref.Publisher.Address != "Boston" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestIEEEWeb(t *testing.T) {
	ref := parseFull(t, IEEEWeb,
		`B. Admin, "Server docs," Cloud Docs, 2021. [Online]. Available: https://docs.example.com/guide`)
	if ref.Type != reference.WebPage {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.URL != "https://docs.example.com/guide" {
		t.Errorf("URL = %q", ref.URL)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Cloud Docs" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
}

func TestAPAArticle(t *testing.T) {
	ref := parseFull(t, APA,
		`Smith, J. A., & Jones, B. (2020). Effects of things on stuff. Journal of Applied Results, 12(3), 45-67. https://doi.org/10.1234/apa`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if got := ref.Title.String(); got != "Effects of things on stuff" {
		t.Errorf("Title = %q", got)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Journal of Applied Results" ||
		ref.IsPartOf.Volume != "12" || ref.IsPartOf.Issue != "3" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.DOI != "10.1234/apa" || ref.Year() != 2020 {
		t.Errorf("doi/year = %q/%d", ref.DOI, ref.Year())
	}
}

func TestAPAChapter(t *testing.T) {
	ref := parseFull(t, APA,
		`Smith, J. A. (2020). Chapter on things. In B. Editor (Ed.), The handbook of stuff (pp. 10-25). Academic Press.`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "The handbook of stuff" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if len(ref.IsPartOf.Editors) != 1 || ref.IsPartOf.Editors[0].Family != "Editor" {
		t.Errorf("Editors = %+v", ref.IsPartOf.Editors)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 10 || ref.PageEnd.Number != 25 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Academic Press" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestAPABook(t *testing.T) {
	ref := parseFull(t, APA, `Brown, C. (2019). The big book of examples. Academic Press.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Academic Press" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
	if ref.ID != "brown-2019" {
		t.Errorf("ID = %q", ref.ID)
	}
}

func TestAPAWebOrganization(t *testing.T) {
	ref := parseFull(t, APA,
		`World Health Organization. (2021). Guidance on things. WHO Newsroom. https://www.who.int/news/item/guidance`)
	if ref.Type != reference.WebPage {
		t.Fatalf("Type = %q", ref.Type)
	}
	if len(ref.Authors) != 1 || ref.Authors[0].Kind != reference.Organization {
		t.Errorf("Authors = %+v", ref.Authors)
	}
	if ref.URL == "" || ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "WHO Newsroom" {
		t.Errorf("url/site = %q/%+v", ref.URL, ref.IsPartOf)
	}
}

func TestMLAArticle(t *testing.T) {
	ref := parseFull(t, MLA,
		`Smith, John. "Understanding Climate Change." Environmental Science, vol. 15, no. 3, 2023, pp. 45-67. https://doi.org/10.1234/example`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if got := ref.Title.String(); got != "Understanding Climate Change" {
		t.Errorf("Title = %q", got)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Environmental Science" ||
		ref.IsPartOf.Volume != "15" || ref.IsPartOf.Issue != "3" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 45 || ref.PageEnd.Number != 67 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
	if ref.DOI != "10.1234/example" || ref.URL != "" {
		t.Errorf("doi/url = %q/%q", ref.DOI, ref.URL)
	}
	if ref.ID != "smith-2023" {
		t.Errorf("ID = %q", ref.ID)
	}
}

func TestMLAChapter(t *testing.T) {
	ref := parseFull(t, MLA,
		`Garcia, Maria. "On Methods." The Methods Reader, edited by John Smith, Routledge, 2018, pp. 33-50.`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "The Methods Reader" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if len(ref.IsPartOf.Editors) != 1 || ref.IsPartOf.Editors[0].Family != "Smith" {
		t.Errorf("Editors = %+v", ref.IsPartOf.Editors)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Routledge" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 33 {
		t.Errorf("PageStart = %v", ref.PageStart)
	}
}

func TestMLABook(t *testing.T) {
	ref := parseFull(t, MLA, `Smith, John. The Long Road Home. Penguin, 2020.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Penguin" || ref.Year() != 2020 {
		t.Errorf("publisher/year = %+v/%d", ref.Publisher, ref.Year())
	}
}

func TestMLAWeb(t *testing.T) {
	ref := parseFull(t, MLAWeb,
		`Lee, Anna. "How to Measure Rain." Weather Site, 2022, https://weather.example.com/rain. Accessed 4 May 2022.`)
	if ref.Type != reference.WebPage {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.URL != "https://weather.example.com/rain" || ref.Year() != 2022 {
		t.Errorf("url/year = %q/%d", ref.URL, ref.Year())
	}
}

func TestChicagoArticle(t *testing.T) {
	ref := parseFull(t, Chicago,
		`Doe, Jane. "Findings and Claims." Journal of Results 12, no. 4 (2019): 200-215.`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Journal of Results" ||
		ref.IsPartOf.Volume != "12" || ref.IsPartOf.Issue != "4" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.Year() != 2019 || ref.PageStart == nil || ref.PageStart.Number != 200 {
		t.Errorf("year/pages = %d/%v", ref.Year(), ref.PageStart)
	}
}

func TestChicagoChapter(t *testing.T) {
	ref := parseFull(t, Chicago,
		`Doe, Jane. "A Chapter." In The Collected Volume, edited by John Smith, 45-67. Chicago: University Press, 2015.`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "The Collected Volume" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "University Press" || ref.Publisher.Address != "Chicago" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 45 {
		t.Errorf("PageStart = %v", ref.PageStart)
	}
}

func TestChicagoBook(t *testing.T) {
	ref := parseFull(t, Chicago,
		`Doe, Jane. A History of Everything. Chicago: University Press, 2015.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "University Press" || ref.Publisher.Address != "Chicago" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestChicagoWeb(t *testing.T) {
	ref := parseFull(t, Chicago,
		`Doe, Jane. "About the Project." Project Site. Accessed March 3, 2021. https://project.example.org/about.`)
	if ref.Type != reference.WebPage {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.URL != "https://project.example.org/about" {
		t.Errorf("URL = %q", ref.URL)
	}
}

func TestACSArticle(t *testing.T) {
	ref := parseFull(t, ACS,
		`Smith, J. A.; Jones, B. Synthesis of Things. J. Am. Chem. Soc. 2020, 142 (10), 1234-1240. DOI: 10.1021/jacs.0c01234`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "J. Am. Chem. Soc." ||
		ref.IsPartOf.Volume != "142" || ref.IsPartOf.Issue != "10" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.DOI != "10.1021/jacs.0c01234" {
		t.Errorf("DOI = %q", ref.DOI)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 1234 || ref.PageEnd.Number != 1240 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
}

func TestACSChapter(t *testing.T) {
	ref := parseFull(t, ACS,
		`Smith, J. A. Catalytic Pathways. In Modern Catalysis; Jones, B., Ed.; Wiley: New York, 2018; pp 101-120.`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Modern Catalysis" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if len(ref.IsPartOf.Editors) != 1 || ref.IsPartOf.Editors[0].Family != "Jones" {
		t.Errorf("Editors = %+v", ref.IsPartOf.Editors)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Wiley" || ref.Publisher.Address != "New York" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 101 {
		t.Errorf("PageStart = %v", ref.PageStart)
	}
}

func TestACSBook(t *testing.T) {
	ref := parseFull(t, ACS, `Jones, B. Organic Structures; Wiley: New York, 2019.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if got := ref.Title.String(); got != "Organic Structures" {
		t.Errorf("Title = %q", got)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Wiley" || ref.Publisher.Address != "New York" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestVancouverArticle(t *testing.T) {
	ref := parseFull(t, Vancouver,
		`Smith JA, Jones B. Effects of things in medicine. J Abbrev Med. 2020;5(2):100-10. doi: 10.1000/xyz`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "J Abbrev Med" ||
		ref.IsPartOf.Volume != "5" || ref.IsPartOf.Issue != "2" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 100 || ref.PageEnd.Number != 10 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
	if ref.DOI != "10.1000/xyz" || ref.ID != "smith-and-jones-2020" {
		t.Errorf("doi/id = %q/%q", ref.DOI, ref.ID)
	}
}

func TestVancouverChapter(t *testing.T) {
	ref := parseFull(t, Vancouver,
		`Smith JA. Advanced methods. In: Jones B, editor. The big textbook. Boston: Health Press; 2019. p. 55-70.`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "The big textbook" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if len(ref.IsPartOf.Editors) != 1 || ref.IsPartOf.Editors[0].Family != "Jones" {
		t.Errorf("Editors = %+v", ref.IsPartOf.Editors)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Health Press" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestVancouverBook(t *testing.T) {
	ref := parseFull(t, Vancouver, `Smith JA. Clinical handbook. London: Medical Press; 2018.`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Medical Press" || ref.Publisher.Address != "London" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestLNCSChapter(t *testing.T) {
	ref := parseFull(t, LNCS,
		`Mueller, K., Schmidt, R.: Learning on graphs. In: Weber, T. (eds.) Proceedings of the Graph Conference. LNCS, vol. 1234, pp. 12-24. Springer, Heidelberg (2019)`)
	if ref.Type != reference.Chapter {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Proceedings of the Graph Conference" ||
		ref.IsPartOf.Volume != "1234" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if len(ref.IsPartOf.Editors) != 1 || ref.IsPartOf.Editors[0].Family != "Weber" {
		t.Errorf("Editors = %+v", ref.IsPartOf.Editors)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Springer" || ref.Publisher.Address != "Heidelberg" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
	if ref.Year() != 2019 || ref.ID != "mueller-and-schmidt-2019" {
		t.Errorf("year/id = %d/%q", ref.Year(), ref.ID)
	}
}

func TestLNCSArticle(t *testing.T) {
	ref := parseFull(t, LNCS,
		`Mueller, K.: Spectral methods. Journal of Graph Algorithms 14(2), 199-220 (2018)`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Journal of Graph Algorithms" ||
		ref.IsPartOf.Volume != "14" || ref.IsPartOf.Issue != "2" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 199 {
		t.Errorf("PageStart = %v", ref.PageStart)
	}
}

func TestLNCSBook(t *testing.T) {
	ref := parseFull(t, LNCS, `Mueller, K.: Graph Theory Basics. Springer, Heidelberg (2017)`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Springer" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}

func TestAASArticle(t *testing.T) {
	ref := parseFull(t, AAS, `Smith, J. A., & Jones, B. 2020, ApJ, 891, 45`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "ApJ" || ref.IsPartOf.Volume != "891" {
		t.Errorf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 45 {
		t.Errorf("PageStart = %v", ref.PageStart)
	}
	if len(ref.Title) != 0 {
		t.Errorf("Title = %v, want none", ref.Title)
	}
}

func TestAASBook(t *testing.T) {
	ref := parseFull(t, AAS, `Smith, J. A. 2018, Introduction to Astropolitics (New York: Wiley)`)
	if ref.Type != reference.Book {
		t.Fatalf("Type = %q", ref.Type)
	}
	if ref.Publisher == nil || ref.Publisher.Name != "Wiley" || ref.Publisher.Address != "New York" {
		t.Errorf("Publisher = %+v", ref.Publisher)
	}
}
