package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTrendsPostsSymbolsAndDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get_trends", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"AAPL", "MSFT"}, body["symbols"])

		_, _ = fmt.Fprint(w, `{"trends":[[1,2,3],[2,3]],"predictions":[[4],[5]],"cpu_cores":8,"status":"success","message":"ok"}`)
	}))
	defer server.Close()

	client, err := New(server.URL+"/get_trends", WithRequestIDs(func() string { return "req-1" }))
	require.NoError(t, err)

	resp, err := client.FetchTrends(context.Background(), domain.TrendRequest{Symbols: []string{"AAPL", "MSFT"}})
	require.NoError(t, err)
	assert.Equal(t, domain.TrendResponse{
		Trends:      [][]float64{{1, 2, 3}, {2, 3}},
		Predictions: [][]float64{{4}, {5}},
		CPUCores:    8,
		Status:      "success",
		Message:     "ok",
	}, resp)
}

func TestFetchTrendsReturnsServerErrorPayloadOnBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"error":"No symbols provided"}`)
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)

	resp, err := client.FetchTrends(context.Background(), domain.TrendRequest{Symbols: []string{""}})
	require.NoError(t, err)
	assert.True(t, resp.HasError())
	assert.Equal(t, "No symbols provided", resp.Error)
}

func TestFetchTrendsWrapsDecodeFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprint(w, "<html>Internal Server Error</html>")
	}))
	defer server.Close()

	client, err := New(server.URL)
	require.NoError(t, err)

	_, err = client.FetchTrends(context.Background(), domain.TrendRequest{Symbols: []string{"AAPL"}})
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetchTrendsWrapsTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client, err := New(endpoint)
	require.NoError(t, err)

	_, err = client.FetchTrends(context.Background(), domain.TrendRequest{Symbols: []string{"AAPL"}})
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestNewRejectsEmptyEndpoint(t *testing.T) {
	_, err := New("   ")
	require.ErrorContains(t, err, "trends endpoint is empty")
}
