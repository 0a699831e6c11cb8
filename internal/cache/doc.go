// Package cache keeps fetched publication data files on disk for a limited time.
//
// Entries are JSON files named after the SHA-256 of the source URL and hold the
// raw payload together with its creation and expiry times. Writes go through a
// temporary file and a rename so a reader never sees a partial entry.
package cache
