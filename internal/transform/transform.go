// Package transform applies value-normalization steps to raw extracted
// strings. Apply never fails: any malformed transform returns the input
// unchanged so a bad transform can't cost an otherwise-found field.
package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/fieldharvest/internal/fieldspec"
)

// numberRe matches the first signed-decimal substring in a value, e.g. the
// "87.5" in "Score: 87.5%".
var numberRe = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// Apply runs a single transform against a raw value. A nil transform and any
// unknown kind are identity. convert_to_number returns float64 when a numeric
// substring parses, otherwise the original string.
func Apply(value string, t *fieldspec.Transform) any {
	if t == nil {
		return value
	}

	switch t.Kind {
	case fieldspec.TransformRegex:
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return value
		}
		return re.ReplaceAllString(value, t.Replacement)

	case fieldspec.TransformStripChars:
		if t.Chars == nil {
			return strings.TrimSpace(value)
		}
		return strings.Trim(value, *t.Chars)

	case fieldspec.TransformConvertToNumber:
		m := numberRe.FindString(value)
		if m == "" {
			return value
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return value
		}
		return f

	default:
		return value
	}
}
