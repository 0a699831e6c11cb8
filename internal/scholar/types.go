package scholar

// Author is the Semantic Scholar author record.
type Author struct {
	AuthorID      string   `json:"authorId"`
	Name          string   `json:"name"`
	Affiliations  []string `json:"affiliations"`
	PaperCount    int      `json:"paperCount"`
	CitationCount int      `json:"citationCount"`
	HIndex        int      `json:"hIndex"`
}

// PaperAuthor is an author entry on a paper.
type PaperAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

// OpenAccessPDF points at a freely available copy of a paper.
type OpenAccessPDF struct {
	URL    string `json:"url"`
	Status string `json:"status"`
}

// Paper is the Semantic Scholar paper record.
type Paper struct {
	PaperID       string         `json:"paperId"`
	Title         string         `json:"title"`
	Year          int            `json:"year"`
	Venue         string         `json:"venue"`
	Abstract      string         `json:"abstract"`
	CitationCount int            `json:"citationCount"`
	URL           string         `json:"url"`
	Authors       []PaperAuthor  `json:"authors"`
	OpenAccessPDF *OpenAccessPDF `json:"openAccessPdf"`
}

// papersPage is one page of an author's paper list. Next is absent on the
// last page.
type papersPage struct {
	Offset int     `json:"offset"`
	Next   *int    `json:"next"`
	Data   []Paper `json:"data"`
}
