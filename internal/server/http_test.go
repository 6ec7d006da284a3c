package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/copilotmd/internal/db"
	"github.com/mithrel/copilotmd/internal/present/format"
	"github.com/mithrel/copilotmd/pkg/api"
	"github.com/mithrel/copilotmd/pkg/markdown"
)

func newTestServer(t *testing.T, token string) (*httptest.Server, db.Store) {
	t.Helper()
	store, err := db.Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := viper.New()
	cfg.Set("auth.token", token)
	cfg.Set("history.max_entries", 2)
	ts := httptest.NewServer(New(cfg, store).Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func do(t *testing.T, method, url, ctype, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenderJSON(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", `{"text":"### Summary\n- **a**"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc format.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, markdown.Parse("### Summary\n- **a**"), doc.Blocks)
}

func TestRenderEmptyBody(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodPost, ts.URL+"/v1/render", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc format.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Empty(t, doc.Blocks)
}

func TestRenderHTMLRawBody(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodPost, ts.URL+"/v1/render?format=html", "text/plain", "a <b> **c**", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `<p class="md-p">a &lt;b&gt; <strong>c</strong></p>`)
}

func TestOversizedBodyRejected(t *testing.T) {
	ts, store := newTestServer(t, "")
	big := strings.Repeat("x", maxBody+1)

	resp := do(t, http.MethodPost, ts.URL+"/v1/render?format=plain", "text/plain", big, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/v1/sections", "text/plain", big, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/v1/history", "application/json", `{"query":"q","response":"`+big+`"}`, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	items, err := store.List(context.Background(), api.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, items)

	resp = do(t, http.MethodPost, ts.URL+"/v1/render?format=plain", "text/plain", strings.Repeat("x", maxBody), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenderRejects(t *testing.T) {
	ts, _ := newTestServer(t, "")
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, http.MethodGet, ts.URL+"/v1/render", "", "", "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, ts.URL+"/v1/render?format=pdf", "", "x", "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, http.MethodPost, ts.URL+"/v1/render", "application/json", "{", "").StatusCode)
}

func TestSections(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodPost, ts.URL+"/v1/sections", "text/plain", "### Summary\nok\n### Safety / Red Flags\nnone", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var secs markdown.Sections
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&secs))
	assert.Equal(t, []string{"Summary", "Safety / Red Flags"}, secs.Titles())
}

func TestHistoryLifecycle(t *testing.T) {
	ts, store := newTestServer(t, "")

	resp := do(t, http.MethodPost, ts.URL+"/v1/history", "application/json",
		`{"query":"fever","response":"### Summary\nok","citations":["https://nih.gov"],"model":"sonar-pro"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created api.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)

	resp = do(t, http.MethodGet, ts.URL+"/v1/history/"+created.ID, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got api.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "fever", got.Query)

	resp = do(t, http.MethodGet, ts.URL+"/v1/history?limit=10&since=1h", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []api.Entry `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Items, 1)

	resp = do(t, http.MethodDelete, ts.URL+"/v1/history/"+created.ID, "", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/history/"+created.ID, "", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	entries, err := store.List(context.Background(), api.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryPrunesToMax(t *testing.T) {
	ts, store := newTestServer(t, "")
	for _, q := range []string{"a", "b", "c"} {
		resp := do(t, http.MethodPost, ts.URL+"/v1/history", "application/json", `{"query":"`+q+`"}`, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	entries, err := store.List(context.Background(), api.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryMissingQuery(t *testing.T) {
	ts, _ := newTestServer(t, "")
	resp := do(t, http.MethodPost, ts.URL+"/v1/history", "application/json", `{"response":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/history?since=soon", "", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryAuth(t *testing.T) {
	ts, _ := newTestServer(t, "s3cret")

	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, ts.URL+"/v1/history", "", "", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, do(t, http.MethodGet, ts.URL+"/v1/history", "", "", "wrong").StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/v1/history", "", "", "s3cret").StatusCode)
	// render stays open
	assert.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/v1/render", "", "x", "").StatusCode)
}
