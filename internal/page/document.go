package page

import (
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element IDs the page markup must carry. Missing elements are skipped.
const (
	ContainerID   = "publications-container"
	StatsID       = "publications-stats"
	CurrentPageID = "current-page"
	TotalPagesID  = "total-pages"
	PrevButtonID  = "prev-page"
	NextButtonID  = "next-page"
	PaginationID  = "publications-pagination"
)

// Skeleton is the page used when no template is supplied.
const Skeleton = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Publications</title>
</head>
<body>
<section id="publications" class="publications-section">
<p id="publications-stats" class="pub-stats"></p>
<div id="publications-container" class="publications-list"><p class="pub-loading">Loading publications...</p></div>
<nav id="publications-pagination" class="pub-pagination" style="display: none">
<button id="prev-page" class="pub-page-btn" type="button">Previous</button>
<span class="pub-page-info">Page <span id="current-page">1</span> of <span id="total-pages">1</span></span>
<button id="next-page" class="pub-page-btn" type="button">Next</button>
</nav>
</section>
</body>
</html>
`

// Document is a Surface over an HTML page.
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses page markup from r.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page markup: %w", err)
	}
	return &Document{doc: doc}, nil
}

// NewSkeletonDocument returns a Document over Skeleton.
func NewSkeletonDocument() *Document {
	doc, err := ParseDocument(strings.NewReader(Skeleton))
	if err != nil {
		panic(err)
	}
	return doc
}

func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("#" + id)
}

// Find runs a CSS selector against the page.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// SetContent replaces the publications container's children.
func (d *Document) SetContent(html template.HTML) {
	d.byID(ContainerID).SetHtml(string(html))
}

// SetStats replaces the stats banner's children.
func (d *Document) SetStats(html template.HTML) {
	d.byID(StatsID).SetHtml(string(html))
}

// SetPageIndicator writes the current and total page numbers.
func (d *Document) SetPageIndicator(current, total int) {
	d.byID(CurrentPageID).SetText(strconv.Itoa(current))
	d.byID(TotalPagesID).SetText(strconv.Itoa(total))
}

// SetPrevDisabled toggles the previous button's disabled attribute.
func (d *Document) SetPrevDisabled(disabled bool) {
	setDisabled(d.byID(PrevButtonID), disabled)
}

// SetNextDisabled toggles the next button's disabled attribute.
func (d *Document) SetNextDisabled(disabled bool) {
	setDisabled(d.byID(NextButtonID), disabled)
}

// SetPaginationVisible shows or hides the pagination controls.
func (d *Document) SetPaginationVisible(visible bool) {
	display := "display: none"
	if visible {
		display = "display: flex"
	}
	d.byID(PaginationID).SetAttr("style", display)
}

// ContentHTML returns the inner markup of the publications container.
func (d *Document) ContentHTML() string {
	html, _ := d.byID(ContainerID).Html()
	return html
}

// HTML serialises the whole page.
func (d *Document) HTML() (string, error) {
	html, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialising page: %w", err)
	}
	return html, nil
}

func setDisabled(s *goquery.Selection, disabled bool) {
	if disabled {
		s.SetAttr("disabled", "")
		return
	}
	s.RemoveAttr("disabled")
}
