package acquire

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/fieldharvest/internal/extract"
	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
)

const desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const httpTimeout = 30 * time.Second

// HTTPMethod fetches static markup with a plain HTTP GET. It has no live
// element handle, so extraction runs without the locator strategy. The client
// is created on first use and reused for the whole batch.
type HTTPMethod struct {
	once   sync.Once
	client *http.Client
}

// NewHTTPMethod creates an HTTPMethod.
func NewHTTPMethod() *HTTPMethod {
	return &HTTPMethod{}
}

func (h *HTTPMethod) Name() string { return "http" }

// Attempt GETs the URL with a desktop browser User-Agent. Anything other than
// status 200 is a failure so the chain can move on.
func (h *HTTPMethod) Attempt(ctx context.Context, url string, fields fieldspec.Config) (model.Record, error) {
	h.once.Do(func() {
		h.client = &http.Client{Timeout: httpTimeout}
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "http: build request")
	}
	req.Header.Set("User-Agent", desktopUA)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("http: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "http: parse body")
	}

	return extract.Extract(doc, nil, fields), nil
}
