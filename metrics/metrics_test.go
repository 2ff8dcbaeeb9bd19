package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPromMetrics_Counters(t *testing.T) {
	m := InitPromMetrics()

	m.IncOperation("post-vaa", "success")
	m.IncOperation("post-vaa", "success")
	m.IncOperation("create-wrapped", "failed")
	m.IncTransaction("post-vaa", "success")

	require.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("post-vaa", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("create-wrapped", "failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Transactions.WithLabelValues("post-vaa", "success")))
}

func TestPromMetrics_PayerBalance(t *testing.T) {
	m := InitPromMetrics()
	m.SetPayerBalance("payer", 1.5)
	m.SetPayerBalance("payer", 0.25)
	require.Equal(t, 0.25, testutil.ToFloat64(m.PayerBalance.WithLabelValues("payer")))
}

func TestPromMetrics_Duration(t *testing.T) {
	m := InitPromMetrics()
	m.ObserveDuration("create-ata", 3*time.Second)
	require.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestPromMetrics_Push(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := InitPromMetrics()
	m.IncOperation("post-vaa", "success")

	require.NoError(t, m.Push(server.URL, ""))
	require.Equal(t, "/metrics/job/"+DefaultJob, gotPath)
	require.NotEmpty(t, gotBody)
}

func TestPromMetrics_PushError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := InitPromMetrics()
	err := m.Push(server.URL, "test")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), server.URL))
}
