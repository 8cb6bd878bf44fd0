// Package export writes accumulated records to xlsx, csv, and json artifacts
// sharing a timestamped filename stem. Each format is saved independently so
// one failing writer never blocks the others.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/fieldharvest/internal/model"
)

// SaveAll writes records to <base>_<timestamp>.{xlsx,csv,json} and returns
// the paths that were written successfully. Failures are logged per format.
func SaveAll(base string, records []model.Record) []string {
	if len(records) == 0 {
		zap.L().Info("export: no records to save")
		return nil
	}

	stem := fmt.Sprintf("%s_%s", base, time.Now().Format("20060102_150405"))
	return saveAll(stem, records)
}

func saveAll(stem string, records []model.Record) []string {
	cols := columnOrder(records)

	targets := []struct {
		path string
		save func(string) error
	}{
		{stem + ".xlsx", func(p string) error { return writeXLSX(p, cols, records) }},
		{stem + ".csv", func(p string) error { return writeCSV(p, cols, records) }},
		{stem + ".json", func(p string) error { return writeJSON(p, records) }},
	}

	var (
		mu    sync.Mutex
		saved []string
	)

	var g errgroup.Group
	for _, t := range targets {
		t := t
		g.Go(func() error {
			if err := t.save(t.path); err != nil {
				zap.L().Error("export: save failed",
					zap.String("path", t.path),
					zap.Error(err),
				)
				return nil // other formats still get their chance
			}
			zap.L().Info("export: saved", zap.String("path", t.path))
			mu.Lock()
			saved = append(saved, t.path)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(saved)
	return saved
}

// columnOrder returns the union of keys across records: field names sorted,
// provenance columns last.
func columnOrder(records []model.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if k == model.KeySourceURL || k == model.KeyScrapedAt || seen[k] {
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return append(cols, model.KeySourceURL, model.KeyScrapedAt)
}

func writeXLSX(path string, cols []string, records []model.Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("records")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range cols {
		header.AddCell().SetString(c)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		for _, c := range cols {
			if n, ok := rec[c].(float64); ok {
				row.AddCell().SetFloat(n)
				continue
			}
			row.AddCell().SetString(cellString(rec[c]))
		}
	}

	return eris.Wrap(f.Save(path), "export: write xlsx")
}

// writeCSV emits UTF-8 with a byte-order mark so spreadsheet tools pick up
// the encoding.
func writeCSV(path string, cols []string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer func() { _ = f.Close() }()

	enc := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(enc)

	if err := w.Write(cols); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cellString(rec[c])
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return eris.Wrap(enc.Close(), "export: finalize csv")
}

func writeJSON(path string, records []model.Record) error {
	buf, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal json")
	}
	return eris.Wrap(os.WriteFile(path, buf, 0o644), "export: write json")
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
