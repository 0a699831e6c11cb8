// Package pagination provides the page cursor used to walk an ordered list of
// publications a fixed number of items at a time.
//
// This package contains:
//   - State: the generic page cursor and its transitions (GoToPage, Next, Previous)
//   - Controls: which navigation controls a surface should disable or hide
//   - Meta: response metadata for structured output
//   - Params: CLI flag validation for page and page-size
//
// Out-of-range navigation is a silent no-op, never an error. The same State is
// used by both the re-rendering and the show/hide pagination strategies.
package pagination
