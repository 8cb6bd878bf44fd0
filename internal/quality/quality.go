// Package quality decides whether an extraction result is complete enough to
// accept, or whether the acquisition chain should escalate to the next method.
package quality

import "github.com/sells-group/fieldharvest/internal/model"

// Acceptable reports whether at least threshold of the record's fields
// resolved to real values. An empty record is never acceptable. This is a
// completeness heuristic only; it cannot tell a wrong value from a right one.
func Acceptable(rec model.Record, threshold float64) bool {
	if len(rec) == 0 {
		return false
	}

	found := 0
	for _, v := range rec {
		if model.Found(v) {
			found++
		}
	}

	return float64(found)/float64(len(rec)) >= threshold
}
