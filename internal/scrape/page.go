package scrape

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobtrack-engine/internal/scrape/util"
)

// Page is an immutable snapshot of a loaded job page.
type Page struct {
	Doc      *goquery.Document
	URL      string
	Hostname string
}

// NewPage wraps an already parsed document.
func NewPage(doc *goquery.Document, pageURL string) Page {
	return Page{
		Doc:      doc,
		URL:      pageURL,
		Hostname: util.Hostname(pageURL),
	}
}

// ParsePage parses HTML from r into a Page.
func ParsePage(r io.Reader, pageURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, err
	}
	return NewPage(doc, pageURL), nil
}

// ParseHTML is ParsePage over a string.
func ParseHTML(html, pageURL string) (Page, error) {
	return ParsePage(strings.NewReader(html), pageURL)
}

// DocumentTitle is the text of the first <title> element.
func (p Page) DocumentTitle() string {
	if p.Doc == nil {
		return ""
	}
	return p.Doc.Find("title").First().Text()
}

// bySelectors returns the first non-empty cleaned text among selectors.
func (p Page) bySelectors(selectors []string) string {
	if p.Doc == nil {
		return ""
	}
	for _, sel := range selectors {
		if v := util.CleanText(p.Doc.Find(sel).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func (p Page) metaProperty(prop string) string {
	if p.Doc == nil {
		return ""
	}
	v, _ := p.Doc.Find(`meta[property="` + prop + `"]`).First().Attr("content")
	return util.CleanText(v)
}
