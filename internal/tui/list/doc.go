// Package listview provides a generic selectable list for Bubble Tea views.
//
// The list holds one page of items at a time; paging is handled by the owner,
// which replaces the items with SetItems. Selection moves with up/down, j/k
// and home/end and is clamped to the current items.
package listview
