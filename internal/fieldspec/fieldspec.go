// Package fieldspec defines the per-field extraction configuration: which
// selectors, XPath locators, text patterns, and attribute lookups to try for
// each named field, and the optional transform applied to the raw value.
package fieldspec

// Transform kinds. Anything else is treated as identity.
const (
	TransformRegex           = "regex"
	TransformStripChars      = "strip_chars"
	TransformConvertToNumber = "convert_to_number"
)

// AttributeRef names an attribute to pull from the first element matching
// Selector.
type AttributeRef struct {
	Selector  string `yaml:"selector" json:"selector"`
	Attribute string `yaml:"attribute" json:"attribute"`
}

// Transform describes a single post-extraction normalization step.
type Transform struct {
	Kind        string  `yaml:"type" json:"type"`
	Pattern     string  `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Replacement string  `yaml:"replacement,omitempty" json:"replacement,omitempty"`
	Chars       *string `yaml:"chars,omitempty" json:"chars,omitempty"`
}

// Spec lists the strategies for one field, each tried in declaration order.
// Locators are XPath expressions and only apply when the document was
// acquired by a live browser. Each pattern is expected to contain exactly one
// capture group. A spec with all four lists empty never resolves.
type Spec struct {
	Selectors  []string       `yaml:"css_selectors,omitempty" json:"css_selectors,omitempty"`
	Locators   []string       `yaml:"xpath,omitempty" json:"xpath,omitempty"`
	Patterns   []string       `yaml:"text_patterns,omitempty" json:"text_patterns,omitempty"`
	Attributes []AttributeRef `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Transform  *Transform     `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Config maps field names to their specs. Fields are resolved independently;
// the map order carries no meaning.
type Config map[string]Spec
