package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsGateAndProvider(t *testing.T) {
	r := NewRecorder()

	r.ObserveGate("admitted")
	r.ObserveGate("admitted")
	r.ObserveGate("rate_limited")
	r.ObserveProvider("ok", 120*time.Millisecond, TokenUsage{PromptTokens: 40, CompletionTokens: 10, TotalTokens: 50})
	r.ObserveProvider("auth", 80*time.Millisecond, TokenUsage{})

	require.Equal(t, 2.0, testutil.ToFloat64(r.gateDecisions.WithLabelValues("admitted")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.gateDecisions.WithLabelValues("rate_limited")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.providerCalls.WithLabelValues("auth")))
	require.Equal(t, 40.0, testutil.ToFloat64(r.providerTokens.WithLabelValues("prompt")))
	require.Equal(t, 10.0, testutil.ToFloat64(r.providerTokens.WithLabelValues("completion")))
}

func TestRecorderHandlerServesExposition(t *testing.T) {
	r := NewRecorder()
	r.ObserveHTTP("/summarize", http.MethodPost, http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `page_summarizer_http_requests_total{method="POST",route="/summarize",status="200"} 1`)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() {
		r.ObserveHTTP("/", http.MethodGet, http.StatusOK, time.Millisecond)
		r.ObserveGate("admitted")
		r.ObserveProvider("ok", time.Millisecond, TokenUsage{})
	})
}
