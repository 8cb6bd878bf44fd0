// Package acquire obtains page content and runs field extraction against it,
// trying acquisition methods in priority order: rendered browser, plain HTTP,
// then a structured API endpoint when one is configured.
package acquire

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
	"github.com/sells-group/fieldharvest/internal/quality"
)

// Method is one way of acquiring a page and producing a field record from it.
type Method interface {
	Name() string
	Attempt(ctx context.Context, url string, fields fieldspec.Config) (model.Record, error)
}

// Chain tries methods in order, stopping at the first result that passes the
// quality gate.
type Chain struct {
	methods   []Method
	threshold float64
}

// NewChain creates a Chain with the given quality threshold and methods.
// Methods are tried in the order given.
func NewChain(threshold float64, methods ...Method) *Chain {
	return &Chain{
		methods:   methods,
		threshold: threshold,
	}
}

// Fetch runs the fallback chain for one URL. The first record passing the
// quality gate is returned with accepted=true. When no method passes, the
// record produced by the last method that ran without error is returned with
// accepted=false; callers always get a usable mapping, never nil. The only
// error condition is context cancellation between attempts.
func (c *Chain) Fetch(ctx context.Context, url string, fields fieldspec.Config) (model.Record, bool, error) {
	last := model.Record{}

	for _, m := range c.methods {
		if err := ctx.Err(); err != nil {
			return last, false, err
		}

		rec, err := m.Attempt(ctx, url, fields)
		if err != nil {
			zap.L().Debug("acquire: method failed, trying next",
				zap.String("method", m.Name()),
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}

		last = rec
		if quality.Acceptable(rec, c.threshold) {
			zap.L().Info("acquire: method succeeded",
				zap.String("method", m.Name()),
				zap.String("url", url),
			)
			return rec, true, nil
		}

		zap.L().Debug("acquire: result below threshold, trying next",
			zap.String("method", m.Name()),
			zap.String("url", url),
		)
	}

	return last, false, nil
}
