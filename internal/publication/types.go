package publication

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Year is a publication year as displayed on the page.
// The data file may carry it either as a JSON string or as a number.
type Year string

// UnmarshalJSON accepts "2024", 2024 and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding year: %w", err)
		}
		*y = Year(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding year: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

// String returns the display form of the year.
func (y Year) String() string {
	return string(y)
}

// Record is one published work.
type Record struct {
	Year      Year   `json:"year"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Venue     string `json:"venue,omitempty"`
	Abstract  string `json:"abstract,omitempty"`
	Citations int    `json:"citations"`
	URL       string `json:"url,omitempty"`
	PDFURL    string `json:"pdf_url,omitempty"`
}

// HasLinks reports whether the record carries any outbound link.
func (r Record) HasLinks() bool {
	return r.URL != "" || r.PDFURL != ""
}

// AuthorStats is the aggregate author metadata written next to the publication list.
type AuthorStats struct {
	Name        string `json:"name,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	ScholarID   string `json:"scholar_id"`
	Citations   int    `json:"citations"`
	HIndex      int    `json:"h_index"`
	I10Index    int    `json:"i10_index,omitempty"`
}

// Document is the top-level publications data file.
type Document struct {
	Author       *AuthorStats `json:"author,omitempty"`
	Publications []Record     `json:"publications"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
	Total        int          `json:"total"`
}

// Stats is what the stats banner displays.
type Stats struct {
	ScholarID         string `json:"scholar_id"`
	TotalPublications int    `json:"total_publications"`
	CitationCount     int    `json:"citation_count"`
	HIndex            int    `json:"h_index"`
}

// Stats returns the banner statistics. The second result is false when the
// document has no author block, in which case no banner is shown.
func (d *Document) Stats() (Stats, bool) {
	if d == nil || d.Author == nil {
		return Stats{}, false
	}

	total := d.Total
	if total <= 0 {
		total = len(d.Publications)
	}

	return Stats{
		ScholarID:         d.Author.ScholarID,
		TotalPublications: total,
		CitationCount:     d.Author.Citations,
		HIndex:            d.Author.HIndex,
	}, true
}

// ErrEmptyPayload is returned by Decode for an empty input.
var ErrEmptyPayload = errors.New("empty publications payload")

// ErrNullPayload is returned by Decode when the document or one of its
// publications is JSON null.
var ErrNullPayload = errors.New("null publications payload")

// wireDocument shadows Publications so null entries can be told apart
// from empty objects.
type wireDocument struct {
	Document
	Publications []*Record `json:"publications"`
}

// Decode parses a publications data file. Absent publications decode to an
// empty list and negative counts are clamped to zero.
func Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNullPayload
	}

	var wire wireDocument
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("parsing publications: %w", err)
	}

	doc := wire.Document
	if wire.Publications != nil {
		doc.Publications = make([]Record, 0, len(wire.Publications))
	}
	for i, rec := range wire.Publications {
		if rec == nil {
			return nil, fmt.Errorf("%w: publication %d", ErrNullPayload, i)
		}
		doc.Publications = append(doc.Publications, *rec)
	}

	doc.normalize()
	return &doc, nil
}

func (d *Document) normalize() {
	if d.Publications == nil {
		d.Publications = []Record{}
	}
	for i := range d.Publications {
		if d.Publications[i].Citations < 0 {
			d.Publications[i].Citations = 0
		}
	}
	if d.Total < 0 {
		d.Total = 0
	}
	if d.Author != nil {
		if d.Author.Citations < 0 {
			d.Author.Citations = 0
		}
		if d.Author.HIndex < 0 {
			d.Author.HIndex = 0
		}
		if d.Author.I10Index < 0 {
			d.Author.I10Index = 0
		}
	}
}
