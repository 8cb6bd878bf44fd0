package acquire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fieldharvest/internal/config"
	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
)

// APIMethod issues a single configured request against a structured endpoint
// and returns the decoded JSON body as the record verbatim. The endpoint is
// assumed to already return field-shaped data, so extraction is bypassed.
type APIMethod struct {
	cfg    config.APIConfig
	client *http.Client
}

// NewAPIMethod creates an APIMethod from the api_endpoint sub-config.
func NewAPIMethod(cfg config.APIConfig) *APIMethod {
	return &APIMethod{
		cfg:    cfg,
		client: &http.Client{Timeout: httpTimeout},
	}
}

func (a *APIMethod) Name() string { return "api" }

// Attempt sends the configured request. The page URL is ignored: the endpoint
// itself knows what to return. Non-2xx statuses are failures.
func (a *APIMethod) Attempt(ctx context.Context, _ string, _ fieldspec.Config) (model.Record, error) {
	method := strings.ToUpper(a.cfg.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(a.cfg.Body) > 0 {
		buf, err := json.Marshal(a.cfg.Body)
		if err != nil {
			return nil, eris.Wrap(err, "api: marshal body")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.cfg.URL, body)
	if err != nil {
		return nil, eris.Wrap(err, "api: build request")
	}
	req.Header.Set("User-Agent", desktopUA)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Configured headers win, including User-Agent.
	for k, val := range a.cfg.Headers {
		req.Header.Set(k, val)
	}
	if len(a.cfg.Params) > 0 {
		q := req.URL.Query()
		for k, val := range a.cfg.Params {
			q.Set(k, val)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "api: request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("api: status %d", resp.StatusCode)
	}

	var rec model.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, eris.Wrap(err, "api: decode response")
	}

	return rec, nil
}
