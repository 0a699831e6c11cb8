// Package publication defines the publication data file model shared by the
// loader, the renderers and the data file generator.
//
// The JSON field names mirror the data file consumed by the portfolio site
// (publications, author, total, updated_at, pdf_url, ...) and must not change.
package publication
