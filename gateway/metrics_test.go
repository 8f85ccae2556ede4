package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/denied" {
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	c, err := NewClient(APIClientName, srv.URL, nil, WithMetrics(m))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/ok", nil)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/denied", nil)
	require.Error(t, err)
	_, err = c.Get(context.Background(), "/denied", nil)
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(APIClientName, "ok")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(APIClientName, "unauthorized")))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_ReRegisterReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)
	require.Same(t, first.requests, second.requests)
}
