// Package render turns publication records into the HTML fragments the
// portfolio page displays: one <article> per publication, a divider between
// consecutive records, the author stats banner and the static failure message.
//
// Every free-text field is treated as untrusted and escaped. Author lists are
// escaped first and then passed through a Highlighter that emphasises the
// portfolio owner's name variants.
package render
