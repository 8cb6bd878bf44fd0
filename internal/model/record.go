// Package model holds the shared data types passed between acquisition,
// extraction, and export.
package model

import "time"

// NotFound is the sentinel value stored for a field no strategy could resolve.
const NotFound = "Not Found"

// Provenance keys stamped onto every record by the batch driver.
const (
	KeySourceURL = "source_url"
	KeyScrapedAt = "scraped_at"
)

// Record maps field names to extracted values. Values are non-empty strings,
// float64 (for numeric transforms), or the NotFound sentinel. API acquisition
// may put arbitrary JSON values here.
type Record map[string]any

// Stamp adds provenance metadata after extraction. The record is considered
// immutable once appended to a batch result.
func (r Record) Stamp(sourceURL string, at time.Time) {
	r[KeySourceURL] = sourceURL
	r[KeyScrapedAt] = at.Format(time.RFC3339)
}

// Found reports whether v counts as a resolved value for quality purposes.
// Nil, empty strings, and the NotFound sentinel do not count.
func Found(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != "" && t != NotFound
	default:
		return true
	}
}
