package acquire

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fieldharvest/internal/config"
)

func TestAPIMethod_ReturnsBodyVerbatim(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotQuery  string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("report_id")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Assessment Name": "Foo", "Score Percentage": 92}`))
	}))
	defer srv.Close()

	m := NewAPIMethod(config.APIConfig{
		URL:     srv.URL,
		Method:  "post",
		Headers: map[string]string{"Authorization": "Bearer tok"},
		Params:  map[string]string{"report_id": "42"},
		Body:    map[string]any{"include": "all"},
	})

	rec, err := m.Attempt(context.Background(), "https://ignored.example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "42", gotQuery)
	assert.Equal(t, "all", gotBody["include"])

	assert.Equal(t, "Foo", rec["Assessment Name"])
	assert.Equal(t, 92.0, rec["Score Percentage"], "extraction is bypassed, JSON numbers decode as float64")
}

func TestAPIMethod_DefaultsToGET(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := NewAPIMethod(config.APIConfig{URL: srv.URL})
	_, err := m.Attempt(context.Background(), "", nil)

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestAPIMethod_BrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := NewAPIMethod(config.APIConfig{URL: srv.URL})
	_, err := m.Attempt(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Contains(t, gotUA, "Mozilla/5.0", "api requests carry the desktop user agent")

	m = NewAPIMethod(config.APIConfig{
		URL:     srv.URL,
		Headers: map[string]string{"User-Agent": "custom-agent/1.0"},
	})
	_, err = m.Attempt(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/1.0", gotUA, "configured headers override the default")
}

func TestAPIMethod_NonSuccessStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := NewAPIMethod(config.APIConfig{URL: srv.URL})
	_, err := m.Attempt(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestAPIMethod_MalformedJSONIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	m := NewAPIMethod(config.APIConfig{URL: srv.URL})
	_, err := m.Attempt(context.Background(), "", nil)
	assert.Error(t, err)
}
