package fieldspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "fields.yaml", `
Assessment Name:
  css_selectors: [".assessment-name", "h1"]
  text_patterns: ['Assessment Name[:\s]*([^\n]+)']
Email:
  attributes:
    - selector: '[href^="mailto:"]'
      attribute: href
  transform:
    type: regex
    pattern: 'mailto:'
    replacement: ''
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg, 2)

	// Field names keep their case and spaces.
	spec, ok := cfg["Assessment Name"]
	require.True(t, ok)
	assert.Equal(t, []string{".assessment-name", "h1"}, spec.Selectors)
	assert.Len(t, spec.Patterns, 1)

	email := cfg["Email"]
	require.Len(t, email.Attributes, 1)
	assert.Equal(t, "href", email.Attributes[0].Attribute)
	require.NotNil(t, email.Transform)
	assert.Equal(t, TransformRegex, email.Transform.Kind)
}

func TestLoad_JSON(t *testing.T) {
	path := writeTemp(t, "fields.json", `{
		"Score Percentage": {
			"css_selectors": [".score"],
			"transform": {"type": "convert_to_number"}
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	spec, ok := cfg["Score Percentage"]
	require.True(t, ok)
	assert.Equal(t, []string{".score"}, spec.Selectors)
	require.NotNil(t, spec.Transform)
	assert.Equal(t, TransformConvertToNumber, spec.Transform.Kind)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeTemp(t, "bad.json", `{not json`)
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	cfg := Sample()
	assert.Len(t, cfg, 17)

	// Every sample field has at least one strategy configured.
	for name, spec := range cfg {
		total := len(spec.Selectors) + len(spec.Locators) + len(spec.Patterns) + len(spec.Attributes)
		assert.Positive(t, total, "field %s has no strategies", name)
	}

	assert.NotNil(t, cfg["Score Percentage"].Transform)
	assert.Equal(t, TransformConvertToNumber, cfg["Score Percentage"].Transform.Kind)
	assert.NotEmpty(t, cfg["Candidate Name"].Locators)
}
