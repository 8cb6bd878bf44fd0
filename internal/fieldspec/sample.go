package fieldspec

// Sample returns the built-in field configuration used when no field config
// file is given. It targets assessment-report style pages: identity fields,
// scoring fields, and proctoring integrity flags.
func Sample() Config {
	number := &Transform{Kind: TransformConvertToNumber}

	return Config{
		"Assessment Name": {
			Selectors: []string{".assessment-name", `[data-testid*="assessment"]`, "h1", "h2"},
			Patterns:  []string{`Assessment Name[:\s]*([^\n]+)`, `Assessment[:\s]*([^\n]+)`, `Test Name[:\s]*([^\n]+)`},
		},
		"Candidate Name": {
			Selectors: []string{".candidate-name", `[data-testid*="candidate"]`, `[data-testid*="name"]`},
			Locators:  []string{`//*[contains(text(), "Candidate Name")]/following::*[1]`},
			Patterns:  []string{`Candidate Name[:\s]*([^\n]+)`, `Candidate[:\s]*([^\n]+)`},
		},
		"Email": {
			Selectors:  []string{`[href^="mailto:"]`, ".email", `[data-testid*="email"]`},
			Patterns:   []string{`E-mail[:\s]*([^\n]+)`, `Email[:\s]*([^\n]+)`},
			Attributes: []AttributeRef{{Selector: `[href^="mailto:"]`, Attribute: "href"}},
			Transform:  &Transform{Kind: TransformRegex, Pattern: `mailto:`, Replacement: ""},
		},
		"Total Assessment Time": {
			Selectors: []string{".assessment-time", `[data-testid*="time"]`},
			Patterns:  []string{`Total Assessment Time[:\s]*([^\n]+)`, `Assessment Time[:\s]*([^\n]+)`},
		},
		"Score Percentage": {
			Selectors: []string{".score-percentage", `[data-testid*="score"]`},
			Patterns:  []string{`Score Percentage[:\s]*([^\n]+)`, `Score[:\s]*([^\n]+)`},
			Transform: number,
		},
		"Trust Score": {
			Selectors: []string{".trust-score", `[data-testid*="trust"]`},
			Patterns:  []string{`Trust Score[:\s]*([^\n]+)`},
			Transform: number,
		},
		"Tab Switched": {
			Patterns:  []string{`Tab Switched[-:\s]*([0-9]+)`},
			Transform: number,
		},
		"Out of Frame": {
			Patterns:  []string{`Out of Frame[-:\s]*([0-9]+)`},
			Transform: number,
		},
		"Clicked Outside Window": {
			Patterns:  []string{`Clicked Outside Window[-:\s]*([0-9]+)`},
			Transform: number,
		},
		"Multiple Faces Detected": {
			Patterns:  []string{`Multiple Faces Detected[-:\s]*([0-9]+)`},
			Transform: number,
		},
		"External Monitor Detected": {
			Patterns: []string{`External Monitor Detected[-:\s]*([A-Za-z])`},
		},
		"Fullscreen Exited": {
			Patterns: []string{`Fullscreen Exited[-:\s]*([A-Za-z])`},
		},
		"Extension Detected": {
			Patterns: []string{`Extension Detected[-:\s]*([A-Za-z])`},
		},
		"IP Mismatch": {
			Patterns:  []string{`IP Mismatch[-:\s]*([0-9]+)`},
			Transform: number,
		},
		"Strong Points": {
			Patterns: []string{`Strong Points[-:\s]*([\s\S]*?)(?:Areas Of Improvement|Overall Feedback|$)`},
		},
		"Areas Of Improvement": {
			Patterns: []string{`Areas Of Improvement[-:\s]*([\s\S]*?)(?:Strong Points|Overall Feedback|$)`},
		},
		"Overall Feedback": {
			Patterns: []string{`Overall Feedback[-:\s]*([\s\S]*?)$`},
		},
	}
}
