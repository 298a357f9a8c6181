package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/pipeline"
	"github.com/matzehuels/mekko/pkg/storage"
)

const datasetJSON = `{
  "name": "revenue",
  "title": "Revenue by region",
  "input": {
    "categories": [{"value": "EMEA"}, {"value": "APAC"}],
    "columns": [
      {"name": "Acme", "roles": ["Y"], "values": [10, 20]},
      {"name": "Globex", "roles": ["Y"], "values": [5, null]},
      {"name": "Width", "roles": ["Width"], "values": [30, 10]}
    ]
  },
  "options": {}
}`

const datasetCSV = `category,series,value
EMEA,Acme,10
APAC,Acme,20
`

const datasetTSV = "category\tseries\tvalue\nEMEA\tAcme\t10\nAPAC\tAcme\t20\n"

func newTestServer(t *testing.T) (*httptest.Server, *storage.MemoryStore) {
	t.Helper()
	logger := log.New(io.Discard)
	store := storage.NewMemoryStore()
	s := New(Options{
		Runner: pipeline.NewRunner(cache.NewMemoryCache(), nil, logger),
		Store:  store,
		Logger: logger,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func do(t *testing.T, method, url, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := do(t, http.MethodGet, ts.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestLayout(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/v1/layout", "application/json", datasetJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		DatasetHash string `json:"dataset_hash"`
		Cached      bool   `json:"cached"`
		Layout      struct {
			Categories     []json.RawMessage `json:"categories"`
			CategoryWidths []float64         `json:"category_widths"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.DatasetHash == "" || got.Cached {
		t.Errorf("first layout: hash=%q cached=%v", got.DatasetHash, got.Cached)
	}
	if len(got.Layout.Categories) != 2 {
		t.Errorf("categories = %d", len(got.Layout.Categories))
	}

	_, body = do(t, http.MethodPost, ts.URL+"/v1/layout", "application/json", datasetJSON)
	_ = json.Unmarshal(body, &got)
	if !got.Cached {
		t.Error("second layout of the same dataset should be cached")
	}
}

func TestRender(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		status      int
		wantType    string
	}{
		{"svg default", "", "application/json", datasetJSON, http.StatusOK, "image/svg+xml"},
		{"json", "?format=json", "application/json", datasetJSON, http.StatusOK, "application/json"},
		{"msgpack", "?format=msgpack", "application/json", datasetJSON, http.StatusOK, "application/vnd.msgpack"},
		{"csv body", "?style=outline", "text/csv", datasetCSV, http.StatusOK, "image/svg+xml"},
		{"tsv body", "", "text/tab-separated-values", datasetTSV, http.StatusOK, "image/svg+xml"},
		{"bad format", "?format=gif", "application/json", datasetJSON, http.StatusBadRequest, "application/json"},
		{"bad style", "?style=sketch", "application/json", datasetJSON, http.StatusBadRequest, "application/json"},
		{"bad sort", "?sort=sideways", "application/json", datasetJSON, http.StatusBadRequest, "application/json"},
		{"malformed", "", "application/json", "{", http.StatusBadRequest, "application/json"},
		{"empty", "", "application/json", "", http.StatusBadRequest, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, ts.URL+"/v1/render"+tt.query, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if tt.wantType == "image/svg+xml" && !strings.Contains(string(body), "<svg") {
				t.Errorf("body is not SVG: %.80s", body)
			}
		})
	}
}

func TestChartsLifecycle(t *testing.T) {
	ts, store := newTestServer(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/v1/charts?style=outline", "application/json", datasetJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var created storage.Summary
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Name != "revenue" {
		t.Fatalf("created = %+v", created)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/charts/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/v1/charts", "", "")
	var list []storage.Summary
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Fatalf("list = %s (%v)", body, err)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/v1/charts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"style":"outline"`) {
		t.Errorf("get = %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/v1/charts/"+created.ID+"/render", "", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<svg") {
		t.Errorf("render stored chart = %d %.80s", resp.StatusCode, body)
	}

	resp, _ = do(t, http.MethodDelete, ts.URL+"/v1/charts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	if _, err := store.Get(t.Context(), created.ID); err == nil {
		t.Error("chart should be gone from the store")
	}

	resp, body = do(t, http.MethodGet, ts.URL+"/v1/charts/"+created.ID, "", "")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(string(body), "CHART_NOT_FOUND") {
		t.Errorf("get deleted = %d %s", resp.StatusCode, body)
	}
}

func TestChartErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"invalid id", http.MethodGet, "/v1/charts/not-a-uuid", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/v1/charts/6f1c2f0e-8a43-4d8e-9f5b-3a2d1c0b9e87", http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/v1/charts/6f1c2f0e-8a43-4d8e-9f5b-3a2d1c0b9e87", http.StatusNotFound},
		{"bad limit", http.MethodGet, "/v1/charts?limit=-1", http.StatusBadRequest},
		{"bad style", http.MethodPost, "/v1/charts?style=sketch", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ""
			if tt.method == http.MethodPost {
				body = datasetJSON
			}
			resp, data := do(t, tt.method, ts.URL+tt.path, "application/json", body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, data)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	ts, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/render", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
