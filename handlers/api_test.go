// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/mmm-reach/allocation"
	"github.com/danielhkuo/mmm-reach/models"
	"github.com/danielhkuo/mmm-reach/testutil"
)

func validRequest() models.AnalyzeRequest {
	req, _ := allocation.BuildRequest(testutil.ValidInputs())
	return req
}

func TestAnalyze_Success(t *testing.T) {
	server := testutil.NewAnalysisServer(t, testutil.RespondJSON(http.StatusOK, testutil.TwoChannelResult()))
	handler, _ := newTestHandler(t, server)

	w := httptest.NewRecorder()
	handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", validRequest(), nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp AnalyzeResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Result.TotalBudget != 1000 {
		t.Errorf("Expected total budget 1000, got %v", resp.Result.TotalBudget)
	}
	if len(resp.Report.Table.Rows) != 2 || resp.Report.Table.Rows[0].ShareText != "30.00%" {
		t.Errorf("Unexpected report table: %+v", resp.Report.Table)
	}
	if resp.Report.Table.Total.ShareText != "100%" {
		t.Errorf("Expected total share '100%%', got '%s'", resp.Report.Table.Total.ShareText)
	}
	if len(resp.Report.Chart.Slices) != 2 {
		t.Errorf("Expected 2 chart slices, got %d", len(resp.Report.Chart.Slices))
	}

	body, _ := server.LastRequest(t)
	if len(body.Efficiencies) != 5 || len(body.Models) != 5 {
		t.Errorf("Expected all five channels forwarded, got %+v", body)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     interface{}
		upstream int
	}{
		{
			name:   "out of range",
			status: http.StatusBadRequest,
			body: models.AnalyzeRequest{
				Efficiencies: map[models.Channel]string{"TV": "150", "Facebook": "1", "YouTube": "1", "Radio": "1", "Press": "1"},
			},
		},
		{
			name:   "missing channels",
			status: http.StatusBadRequest,
			body:   models.AnalyzeRequest{Efficiencies: map[models.Channel]string{"TV": "50"}},
		},
		{
			name:     "upstream failure",
			status:   http.StatusBadGateway,
			body:     validRequest(),
			upstream: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := tc.upstream
			if upstream == 0 {
				upstream = http.StatusOK
			}
			server := testutil.NewAnalysisServer(t, testutil.RespondJSON(upstream, testutil.SampleResult()))
			handler, _ := newTestHandler(t, server)

			w := httptest.NewRecorder()
			handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", tc.body, nil))

			testutil.AssertStatus(t, w, tc.status)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message == "" {
				t.Error("Expected an error message")
			}
			if handler.Current() != nil {
				t.Error("Expected no result on display after a failure")
			}
		})
	}
}

func TestAnalyze_InvalidJSON(t *testing.T) {
	handler := NewAllocationHandler(&stubSubmitter{}, nil)

	req := httptest.NewRequest("POST", "/api/analyze", bytes.NewBufferString("{nope"))
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAnalyze_InFlightConflict(t *testing.T) {
	stub := &stubSubmitter{err: allocation.ErrSubmissionInFlight}
	handler := NewAllocationHandler(stub, nil)

	w := httptest.NewRecorder()
	handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", validRequest(), nil))

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestGetResult(t *testing.T) {
	server := testutil.NewAnalysisServer(t, nil)
	handler, _ := newTestHandler(t, server)

	w := httptest.NewRecorder()
	handler.GetResult(w, httptest.NewRequest("GET", "/api/result", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = httptest.NewRecorder()
	handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", validRequest(), nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.GetResult(w, httptest.NewRequest("GET", "/api/result", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp AnalyzeResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Result.Results) != 5 {
		t.Errorf("Expected 5 channel results, got %d", len(resp.Result.Results))
	}
}

func TestAnalyze_ConcurrentSubmitsIssueOneRequest(t *testing.T) {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	server := testutil.NewAnalysisServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-release
		testutil.RespondJSON(http.StatusOK, testutil.SampleResult())(w, r)
	})
	handler, store := newTestHandler(t, server)

	first := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", validRequest(), nil))
		first <- w.Code
	}()
	<-arrived

	var wg sync.WaitGroup
	codes := make(chan int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			handler.Analyze(w, testutil.MakeRequest("POST", "/api/analyze", validRequest(), nil))
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)
	close(release)

	for code := range codes {
		if code != http.StatusConflict {
			t.Errorf("Expected status %d while in flight, got %d", http.StatusConflict, code)
		}
	}
	if code := <-first; code != http.StatusOK {
		t.Errorf("Expected first submission to succeed, got %d", code)
	}
	if server.Calls() != 1 {
		t.Errorf("Expected exactly 1 network call, got %d", server.Calls())
	}

	recent, _ := store.Recent(context.Background(), 10)
	if len(recent) != 1 {
		t.Errorf("Expected only the issued submission to be recorded, got %d", len(recent))
	}
}

func TestAnalyze_NumericEfficiencies(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:   "numbers accepted",
			body:   `{"efficiencies": {"TV": 50, "Facebook": 40, "YouTube": 30, "Radio": 20, "Press": 10}}`,
			status: http.StatusOK,
		},
		{
			name:    "number out of range",
			body:    `{"efficiencies": {"TV": 150, "Facebook": 40, "YouTube": 30, "Radio": 20, "Press": 10}}`,
			status:  http.StatusBadRequest,
			message: "efficiency for TV must be between 0 and 100",
		},
		{
			name:    "boolean value",
			body:    `{"efficiencies": {"TV": 50, "Facebook": true, "YouTube": 30, "Radio": 20, "Press": 10}}`,
			status:  http.StatusBadRequest,
			message: "efficiency for Facebook must be a number",
		},
		{
			name:    "unknown channel",
			body:    `{"efficiencies": {"TV": 50, "Facebook": 40, "YouTube": 30, "Radio": 20, "Press": 10, "Cinema": 5}}`,
			status:  http.StatusBadRequest,
			message: `unknown channel "Cinema"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := testutil.NewAnalysisServer(t, nil)
			handler, _ := newTestHandler(t, server)

			req := httptest.NewRequest("POST", "/api/analyze", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Analyze(w, req)

			testutil.AssertStatus(t, w, tc.status)
			if tc.status == http.StatusOK {
				body, _ := server.LastRequest(t)
				if body.Efficiencies[models.ChannelTV] != "50" {
					t.Errorf("Expected TV efficiency '50' forwarded, got '%s'", body.Efficiencies[models.ChannelTV])
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
			if server.Calls() != 0 {
				t.Errorf("Expected no network calls, got %d", server.Calls())
			}
		})
	}
}
