// Package extract resolves field values from a parsed document using the
// per-field strategy cascade: CSS selector, live XPath locator, text pattern,
// attribute pull. The first strategy producing a non-empty value wins; a
// strategy that errors counts as no match and the cascade continues.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
	"github.com/sells-group/fieldharvest/internal/transform"
)

// LiveLocator resolves an XPath expression against a live browser page and
// returns the element's text. Static documents have no live handle, so the
// locator strategy is skipped when this is nil.
type LiveLocator interface {
	LocateText(expr string) (string, error)
}

// Extract resolves every configured field against doc. Fields are independent:
// a field that resolves nothing gets the NotFound sentinel and never affects
// its neighbors. The document's full text is computed at most once per call
// and shared by all pattern strategies.
func Extract(doc *goquery.Document, live LiveLocator, fields fieldspec.Config) model.Record {
	rec := make(model.Record, len(fields))

	var fullText string
	textDone := false
	text := func() string {
		if !textDone {
			fullText = documentText(doc)
			textDone = true
		}
		return fullText
	}

	for name, spec := range fields {
		raw, ok := resolve(doc, live, spec, text)
		if !ok {
			rec[name] = model.NotFound
			continue
		}

		var out any = raw
		if spec.Transform != nil {
			out = transform.Apply(raw, spec.Transform)
		}
		// A transform may strip the value down to nothing.
		if s, isStr := out.(string); isStr && s == "" {
			out = model.NotFound
		}
		rec[name] = out
	}

	return rec
}

// resolve runs the strategy cascade for one field.
func resolve(doc *goquery.Document, live LiveLocator, spec fieldspec.Spec, text func() string) (string, bool) {
	if v, ok := bySelector(doc, spec.Selectors); ok {
		return v, true
	}
	if live != nil {
		if v, ok := byLocator(live, spec.Locators); ok {
			return v, true
		}
	}
	if v, ok := byPattern(text, spec.Patterns); ok {
		return v, true
	}
	if v, ok := byAttribute(doc, spec.Attributes); ok {
		return v, true
	}
	return "", false
}

func bySelector(doc *goquery.Document, selectors []string) (string, bool) {
	for _, sel := range selectors {
		m, err := cascadia.Compile(sel)
		if err != nil {
			continue
		}
		s := doc.FindMatcher(m).First()
		if s.Length() == 0 {
			continue
		}
		if txt := strings.TrimSpace(s.Text()); txt != "" {
			return txt, true
		}
	}
	return "", false
}

func byLocator(live LiveLocator, locators []string) (string, bool) {
	for _, expr := range locators {
		raw, err := live.LocateText(expr)
		if err != nil {
			continue
		}
		if txt := strings.TrimSpace(raw); txt != "" {
			return txt, true
		}
	}
	return "", false
}

func byPattern(text func() string, patterns []string) (string, bool) {
	if len(patterns) == 0 {
		return "", false
	}
	body := text()
	for _, pat := range patterns {
		// Case-insensitive, dot matches newline.
		re, err := regexp.Compile(`(?is)` + pat)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(body)
		if len(m) < 2 {
			continue
		}
		if captured := strings.TrimSpace(m[1]); captured != "" {
			return captured, true
		}
	}
	return "", false
}

func byAttribute(doc *goquery.Document, attrs []fieldspec.AttributeRef) (string, bool) {
	for _, ref := range attrs {
		m, err := cascadia.Compile(ref.Selector)
		if err != nil {
			continue
		}
		s := doc.FindMatcher(m).First()
		if s.Length() == 0 {
			continue
		}
		if val, exists := s.Attr(ref.Attribute); exists && val != "" {
			return val, true
		}
	}
	return "", false
}

// documentText renders every text node joined by newlines, preserving line
// structure for the pattern strategy. No other normalization is applied.
func documentText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}
