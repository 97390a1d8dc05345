// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/mmm-reach/cliparse"
	"github.com/danielhkuo/mmm-reach/db"
	"github.com/danielhkuo/mmm-reach/models"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration pointing at analyzeURL
func GetTestConfig(analyzeURL string) cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		AnalyzeURL:   analyzeURL,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
	}
}

// ValidInputs returns in-range entries for every channel
func ValidInputs() models.ChannelInputs {
	return models.ChannelInputs{
		models.ChannelTV:       {Efficiency: "50", Model: "TV 3+"},
		models.ChannelFacebook: {Efficiency: "40", Model: "FB 4+"},
		models.ChannelYouTube:  {Efficiency: "30", Model: "Youtube 1+"},
		models.ChannelRadio:    {Efficiency: "20"},
		models.ChannelPress:    {Efficiency: "10"},
	}
}

// SampleResult is a five-channel response as the analysis service sends it
func SampleResult() models.AllocationResult {
	return models.AllocationResult{
		Results: []models.ChannelAllocation{
			{Channel: "TV", SelectedModel: "TV 3+", TargetEfficiency: 50, Budget: 5000000, Reach: 41.25},
			{Channel: "Facebook", SelectedModel: "FB 4+", TargetEfficiency: 40, Budget: 800000, Reach: 12.5},
			{Channel: "YouTube", SelectedModel: "Youtube 1+", TargetEfficiency: 30, Budget: 1200000, Reach: 9.75},
			{Channel: "Radio", SelectedModel: "Radio", TargetEfficiency: 20, Budget: 600000, Reach: 4},
			{Channel: "Press", SelectedModel: "Press", TargetEfficiency: 10, Budget: 400000, Reach: 2.5},
		},
		TotalBudget: 8000000,
		TotalReach:  70,
	}
}

// TwoChannelResult is a minimal response with a 30/70 budget split
func TwoChannelResult() models.AllocationResult {
	return models.AllocationResult{
		Results: []models.ChannelAllocation{
			{Channel: "A", SelectedModel: "A", TargetEfficiency: 10, Budget: 300, Reach: 5},
			{Channel: "B", SelectedModel: "B", TargetEfficiency: 20, Budget: 700, Reach: 15},
		},
		TotalBudget: 1000,
		TotalReach:  20,
	}
}

// AnalysisServer is a stand-in for the remote analysis endpoint. It records
// every request it receives.
type AnalysisServer struct {
	*httptest.Server

	calls        atomic.Int32
	mu           sync.Mutex
	bodies       []models.AnalyzeRequest
	contentTypes []string
}

// NewAnalysisServer starts a fake endpoint. A nil handler answers every
// request with SampleResult.
func NewAnalysisServer(t *testing.T, handler http.HandlerFunc) *AnalysisServer {
	t.Helper()

	if handler == nil {
		handler = RespondJSON(http.StatusOK, SampleResult())
	}

	s := &AnalysisServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)

		var body models.AnalyzeRequest
		json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		s.bodies = append(s.bodies, body)
		s.contentTypes = append(s.contentTypes, r.Header.Get("Content-Type"))
		s.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// Endpoint returns the analyze URL on the fake server
func (s *AnalysisServer) Endpoint() string {
	return s.URL + "/api/analyze"
}

// Calls returns how many requests reached the server
func (s *AnalysisServer) Calls() int {
	return int(s.calls.Load())
}

// LastRequest returns the most recent decoded body and its Content-Type
func (s *AnalysisServer) LastRequest(t *testing.T) (models.AnalyzeRequest, string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bodies) == 0 {
		t.Fatal("Expected at least one request to the analysis server")
	}
	return s.bodies[len(s.bodies)-1], s.contentTypes[len(s.contentTypes)-1]
}

// RespondJSON returns a handler that writes v with the given status
func RespondJSON(status int, v interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded POST as the dashboard page sends it
func MakeFormRequest(path string, inputs models.ChannelInputs) *http.Request {
	form := url.Values{}
	for ch, in := range inputs {
		form.Set("efficiency_"+string(ch), in.Efficiency)
		if in.Model != "" {
			form.Set("model_"+string(ch), in.Model)
		}
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
