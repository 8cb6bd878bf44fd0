package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fieldharvest/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{
			"Assessment Name":  "Foo",
			"Score Percentage": 87.5,
			"Candidate Name":   model.NotFound,
			"source_url":       "https://a.example.com",
			"scraped_at":       "2026-03-14T09:26:53Z",
		},
		{
			"Assessment Name":  "Bar",
			"Score Percentage": 91.0,
			"Candidate Name":   "Ada",
			"source_url":       "https://b.example.com",
			"scraped_at":       "2026-03-14T09:27:12Z",
		},
	}
}

func TestSaveAll_WritesAllThreeFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "reports")

	saved := SaveAll(base, sampleRecords())
	require.Len(t, saved, 3)

	var exts []string
	for _, p := range saved {
		exts = append(exts, filepath.Ext(p))
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.ElementsMatch(t, []string{".xlsx", ".csv", ".json"}, exts)
}

func TestSaveAll_NoRecords(t *testing.T) {
	assert.Nil(t, SaveAll(filepath.Join(t.TempDir(), "empty"), nil))
}

func TestSaveAll_FailingFormatDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "reports")

	// A directory squatting on the csv path makes that writer fail.
	require.NoError(t, os.Mkdir(stem+".csv", 0o755))

	saved := saveAll(stem, sampleRecords())
	require.Len(t, saved, 2, "the two healthy formats still save")
	assert.ElementsMatch(t, []string{stem + ".xlsx", stem + ".json"}, saved)

	for _, p := range saved {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestWriteCSV_BOMAndContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords()
	cols := columnOrder(records)

	require.NoError(t, writeCSV(path, cols, records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "csv starts with a UTF-8 BOM")

	r := csv.NewReader(strings.NewReader(string(raw[3:])))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, cols, rows[0])
	assert.Contains(t, rows[1], "87.5", "floats keep their decimal form")
	assert.Contains(t, rows[1], model.NotFound)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, sampleRecords()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []model.Record
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Foo", decoded[0]["Assessment Name"])
	assert.Equal(t, 87.5, decoded[0]["Score Percentage"])
}

func TestWriteXLSX_Reopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	records := sampleRecords()
	cols := columnOrder(records)

	require.NoError(t, writeXLSX(path, cols, records))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 3, "header plus two records")
	assert.Equal(t, cols[0], sheet.Rows[0].Cells[0].String())
}

func TestColumnOrder(t *testing.T) {
	cols := columnOrder(sampleRecords())

	require.Len(t, cols, 5)
	assert.Equal(t, []string{"Assessment Name", "Candidate Name", "Score Percentage"}, cols[:3])
	assert.Equal(t, model.KeySourceURL, cols[3])
	assert.Equal(t, model.KeyScrapedAt, cols[4], "provenance columns always come last")
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "abc", cellString("abc"))
	assert.Equal(t, "87.5", cellString(87.5))
	assert.Equal(t, "3", cellString(3.0))
	assert.Equal(t, "true", cellString(true))
}
