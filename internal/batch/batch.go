// Package batch drives the sequential scrape loop: one URL fully processed
// before the next, a politeness delay between URLs, and per-URL failures
// skipped without aborting the batch.
package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
	"github.com/sells-group/fieldharvest/internal/store"
)

// Fetcher is the acquisition entry point run once per URL. The returned
// record is best-effort and never nil on a nil error; accepted reports
// whether it passed the quality gate. An error means the URL could not be
// attempted at all (e.g. the context was cancelled) and is skipped.
type Fetcher interface {
	Fetch(ctx context.Context, url string, fields fieldspec.Config) (model.Record, bool, error)
}

// Driver iterates a URL list and accumulates stamped records.
type Driver struct {
	fetcher Fetcher
	fields  fieldspec.Config
	limiter *rate.Limiter
	store   store.Store
	now     func() time.Time
}

// New creates a Driver. delay is the politeness pause between URLs. The
// limiter starts with a full token, so the first URL proceeds immediately and
// every later URL waits out the delay. Zero delay disables pacing.
func New(fetcher Fetcher, fields fieldspec.Config, delay time.Duration) *Driver {
	return &Driver{
		fetcher: fetcher,
		fields:  fields,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		now:     time.Now,
	}
}

// WithStore enables run-history persistence. Store errors are logged, never
// fatal to the batch.
func (d *Driver) WithStore(s store.Store) *Driver {
	d.store = s
	return d
}

// Run processes urls in order. Output record order matches input order minus
// skipped URLs. Every record is stamped with source_url and scraped_at before
// it is appended and is treated as immutable afterwards.
func (d *Driver) Run(ctx context.Context, urls []string) []model.Record {
	var run *model.Run
	if d.store != nil {
		var err error
		if run, err = d.store.CreateRun(ctx, len(urls)); err != nil {
			zap.L().Warn("batch: create run failed, continuing without history", zap.Error(err))
			run = nil
		}
	}

	records := make([]model.Record, 0, len(urls))
	for i, u := range urls {
		if err := d.limiter.Wait(ctx); err != nil {
			zap.L().Warn("batch: interrupted while pacing, stopping", zap.Error(err))
			break
		}

		log := zap.L().With(zap.String("url", u))
		log.Info("scraping url", zap.Int("index", i+1), zap.Int("total", len(urls)))

		rec, accepted, err := d.fetcher.Fetch(ctx, u, d.fields)
		if err != nil {
			log.Error("scrape failed, skipping url", zap.Error(err))
			continue
		}

		rec.Stamp(u, d.now())
		records = append(records, rec)
		if !accepted {
			log.Warn("no acquisition method met the quality threshold, keeping best effort")
		}

		if run != nil {
			if err := d.store.AppendRecord(ctx, run.ID, u, rec, accepted); err != nil {
				log.Warn("batch: persist record failed", zap.Error(err))
			}
		}
	}

	if run != nil {
		status := model.RunStatusComplete
		if len(records) == 0 {
			status = model.RunStatusFailed
		}
		if err := d.store.FinishRun(ctx, run.ID, status, len(records)); err != nil {
			zap.L().Warn("batch: finish run failed", zap.Error(err))
		}
	}

	return records
}
