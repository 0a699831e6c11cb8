package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/researchfolio/pubpager/internal/publication"
)

// ScholarProfileBase is the Google Scholar profile URL prefix used by the stats banner.
const ScholarProfileBase = "https://scholar.google.fr/citations?user="

// FailureText is the notice shown when publications cannot be loaded.
const FailureText = "Failed to load publications. Please refresh the page."

// FailureMessage replaces the content region when publications cannot be loaded.
const FailureMessage template.HTML = `<p class="pub-loading">` + FailureText + `</p>`

// Divider separates consecutive publications on a page.
const Divider template.HTML = `<div class="pub-divider"></div>`

// compiledTemplates is parsed at init time to fail fast on template errors.
//
//nolint:gochecknoglobals // Parsed once, read-only afterwards.
var compiledTemplates = template.Must(template.New("render").Parse(fragmentTemplates))

// Renderer turns publication records into HTML fragments.
type Renderer struct {
	highlighter *Highlighter
}

// NewRenderer creates a Renderer. A nil highlighter disables author emphasis.
func NewRenderer(h *Highlighter) *Renderer {
	return &Renderer{highlighter: h}
}

// recordData is the template view of a Record. Authors is pre-escaped and
// highlighted; every other field is escaped by html/template.
type recordData struct {
	Year          string
	Title         string
	Authors       template.HTML
	Venue         string
	CitationLabel string
	URL           string
	PDFURL        string
}

type statsData struct {
	ProfileURL string
	Total      int
	Citations  int
	HIndex     int
}

// Record renders one publication as an <article> fragment.
func (r *Renderer) Record(rec publication.Record) template.HTML {
	out, err := r.execute("publication", r.recordData(rec))
	if err != nil {
		// The template only formats strings and ints; a failure here is a programming error.
		panic(fmt.Sprintf("render publication: %v", err))
	}
	return out
}

// Page renders records separated by dividers, with no trailing divider.
func (r *Renderer) Page(records []publication.Record) template.HTML {
	var buf bytes.Buffer
	for i, rec := range records {
		buf.WriteString(string(r.Record(rec)))
		if i < len(records)-1 {
			buf.WriteString(string(Divider))
		}
	}
	//nolint:gosec // Built only from escaped template output.
	return template.HTML(buf.String())
}

// Stats renders the stats banner contents. The profile link is left out when
// s has no ScholarID.
func (r *Renderer) Stats(s publication.Stats) template.HTML {
	data := statsData{
		Total:     s.TotalPublications,
		Citations: s.CitationCount,
		HIndex:    s.HIndex,
	}
	if s.ScholarID != "" {
		data.ProfileURL = ScholarProfileBase + s.ScholarID
	}
	out, err := r.execute("stats", data)
	if err != nil {
		panic(fmt.Sprintf("render stats: %v", err))
	}
	return out
}

func (r *Renderer) recordData(rec publication.Record) recordData {
	authors := r.highlighter.Strong(rec.Authors)

	return recordData{
		Year:  rec.Year.String(),
		Title: rec.Title,
		//nolint:gosec // Strong escapes every segment it emits.
		Authors:       template.HTML(authors),
		Venue:         rec.Venue,
		CitationLabel: CitationLabel(rec.Citations),
		URL:           rec.URL,
		PDFURL:        rec.PDFURL,
	}
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := compiledTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	//nolint:gosec // Output of html/template.
	return template.HTML(buf.String()), nil
}

// CitationLabel returns "" for zero citations, "1 citation" for one and
// "N citations" otherwise.
func CitationLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "1 citation"
	default:
		return strconv.Itoa(n) + " citations"
	}
}

const fragmentTemplates = `
{{- define "publication" -}}
<article class="publication">
	{{- "" -}}<div class="pub-year">{{.Year}}</div>
	{{- "" -}}<div class="pub-details">
		{{- "" -}}<h3 class="pub-title">
			{{- if .URL -}}
				<a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>
			{{- else -}}
				{{.Title}}
			{{- end -}}
		</h3>
		{{- "" -}}<p class="pub-authors">{{.Authors}}</p>
		{{- if .Venue -}}<p class="pub-venue">{{.Venue}}</p>{{- end -}}
		{{- if .CitationLabel -}}<span class="pub-badge">{{.CitationLabel}}</span>{{- end -}}
		{{- if or .URL .PDFURL -}}
			<div class="pub-links">
				{{- if .URL -}}<a href="{{.URL}}" class="pub-link" target="_blank" rel="noopener"><i class="fas fa-link"></i> Link</a>{{- end -}}
				{{- if .PDFURL -}}<a href="{{.PDFURL}}" class="pub-link" target="_blank" rel="noopener"><i class="fas fa-file-pdf"></i> PDF</a>{{- end -}}
			</div>
		{{- end -}}
	</div>
	{{- "" -}}
</article>
{{- end -}}

{{- define "stats" -}}
{{if .ProfileURL}}<a href="{{.ProfileURL}}" target="_blank" rel="noopener">Google Scholar</a> &middot; {{end}}{{.Total}} publications &middot; {{.Citations}} citations &middot; h-index: {{.HIndex}}
{{- end -}}
`
