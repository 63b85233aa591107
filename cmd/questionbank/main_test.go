package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/questionbank/internal/config"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	chiTransport "github.com/kailas-cloud/questionbank/internal/transport/chi"
	duplicateuc "github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
)

func TestPolicyFromConfig_DefaultsMatchStockPolicy(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()

	got := policyFromConfig(cfg.Duplicates)
	want := duplicateuc.DefaultPolicy()

	if got.CandidateLimit != want.CandidateLimit || got.ResultLimit != want.ResultLimit {
		t.Errorf("limits: got %d/%d, want %d/%d",
			got.CandidateLimit, got.ResultLimit, want.CandidateLimit, want.ResultLimit)
	}
	if got.Weights != want.Weights {
		t.Errorf("weights: got %+v, want %+v", got.Weights, want.Weights)
	}
	if got.Bands != want.Bands || got.DefaultThreshold != want.DefaultThreshold {
		t.Errorf("bands/default: got %+v/%d", got.Bands, got.DefaultThreshold)
	}
	for _, typ := range question.Types() {
		if got.Threshold(typ) != want.Threshold(typ) {
			t.Errorf("threshold %s: got %d, want %d", typ, got.Threshold(typ), want.Threshold(typ))
		}
	}
}

func TestJSONRecoverer(t *testing.T) {
	handler := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp chiTransport.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != chiTransport.ErrorCodeInternalError || resp.Message != "internal error" {
		t.Errorf("got %+v", resp)
	}
}

func TestWideEventMiddleware_LogsOneLinePerRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := chiMiddleware.RequestID(wideEventMiddleware(zap.New(core))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("log lines: got %d, want 1", len(entries))
	}
	if status := entries[0].ContextMap()["status"]; status != int64(http.StatusTeapot) {
		t.Errorf("status field: got %v", status)
	}
}
