package main

import (
	"bufio"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fieldharvest/internal/acquire"
	"github.com/sells-group/fieldharvest/internal/batch"
	"github.com/sells-group/fieldharvest/internal/export"
	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/store"
)

var (
	fieldsPath string
	singleURL  string
	urlFile    string
	outBase    string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape configured fields from one or more URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fields, err := loadFields()
		if err != nil {
			return err
		}

		urls, err := collectURLs()
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			cmd.Println("Provide a --url or --url-file with at least one URL.")
			return nil
		}

		browser := acquire.NewBrowserMethod(cfg.Browser, cfg.Debug, cfg.WaitCSSSelectors)
		defer browser.Close()

		methods := []acquire.Method{browser, acquire.NewHTTPMethod()}
		if cfg.API.URL != "" {
			methods = append(methods, acquire.NewAPIMethod(cfg.API))
		}
		chain := acquire.NewChain(cfg.SuccessThreshold, methods...)

		driver := batch.New(chain, fields, time.Duration(cfg.PolitenessDelaySeconds)*time.Second)
		if cfg.Store.Path != "" {
			st, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				zap.L().Warn("run store disabled", zap.Error(err))
			} else {
				defer func() { _ = st.Close() }()
				if err := st.Migrate(ctx); err != nil {
					zap.L().Warn("run store disabled", zap.Error(err))
				} else {
					driver = driver.WithStore(st)
				}
			}
		}

		records := driver.Run(ctx, urls)

		// Save whatever was accumulated, even if some or all URLs failed.
		saved := export.SaveAll(outBase, records)
		zap.L().Info("scrape complete",
			zap.Int("urls", len(urls)),
			zap.Int("records", len(records)),
			zap.Strings("saved", saved),
		)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&fieldsPath, "fields", "f", "", "path to YAML/JSON field config (built-in sample when omitted)")
	scrapeCmd.Flags().StringVarP(&singleURL, "url", "u", "", "single URL to scrape")
	scrapeCmd.Flags().StringVarP(&urlFile, "url-file", "U", "", "text file with one URL per line")
	scrapeCmd.Flags().StringVarP(&outBase, "out", "o", "assessment_reports", "output filename base (without extension)")
	rootCmd.AddCommand(scrapeCmd)
}

func loadFields() (fieldspec.Config, error) {
	if fieldsPath == "" {
		return fieldspec.Sample(), nil
	}
	return fieldspec.Load(fieldsPath)
}

func collectURLs() ([]string, error) {
	var urls []string
	if u := strings.TrimSpace(singleURL); u != "" {
		urls = append(urls, u)
	}
	if urlFile == "" {
		return urls, nil
	}

	f, err := os.Open(urlFile)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: open url file %s", urlFile)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "scrape: read url file %s", urlFile)
	}
	return urls, nil
}
