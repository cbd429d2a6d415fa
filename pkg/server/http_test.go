package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kumarabd/gokit/logger"
	"github.com/kumarabd/ingestion-plane/loggen/internal/metrics"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/collector/pdata/plog/plogotlp"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{6})?Z$`)

func newTestHTTP(t *testing.T, config *service.Config) (*HTTP, *metrics.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test", logger.Options{Format: logger.JSONLogFormat})
	require.NoError(t, err)
	metric, err := metrics.New("test")
	require.NoError(t, err)

	svc, err := service.New(log, metric, config)
	require.NoError(t, err)

	server := NewHTTP(&HTTPConfig{Host: "127.0.0.1", Port: "8080"}, svc, log, metric)
	return server, metric
}

func doGet(server *HTTP, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	server.handler.ServeHTTP(w, req)
	return w
}

func decodeRecords(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var records []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	return records
}

func TestHTTPEndpoints(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	t.Run("health endpoint", func(t *testing.T) {
		w := doGet(server, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ok", response["status"])
		assert.Contains(t, response, "time")
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		w := doGet(server, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "# HELP")
	})

	t.Run("unknown route", func(t *testing.T) {
		w := doGet(server, "/v1/ingest")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGeneratePaymentLogs(t *testing.T) {
	server, metric := newTestHTTP(t, nil)

	w := doGet(server, "/generate-logs?count=5&type=payment")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	records := decodeRecords(t, w)
	require.Len(t, records, 5)
	for _, record := range records {
		assert.Regexp(t, timestampPattern, record["timestamp"])
		assert.Contains(t, []any{"INFO", "WARN", "ERROR"}, record["level"])
		assert.Contains(t, []any{"payment-gateway", "payment-processor", "fraud-detection", "account-service"}, record["service"])
		assert.Regexp(t, `^tx-[0-9a-f]{8}$`, record["transactionId"])
		assert.Regexp(t, `^cust-\d{3}$`, record["customerId"])
	}

	assert.Equal(t, 5.0, testutil.ToFloat64(metric.GenerateRecordsTotal.WithLabelValues("payment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metric.RequestsReceived.WithLabelValues("200")))
}

func TestGeneratePlatformEvents(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	w := doGet(server, "/generate-logs?count=30&type=pcf")
	require.Equal(t, http.StatusOK, w.Code)

	records := decodeRecords(t, w)
	require.Len(t, records, 30)
	for _, record := range records {
		assert.Equal(t, "china-bank", record["app_name"])
		assert.Regexp(t, `^[0-9a-f]{12}$`, record["container_id"])
		index, ok := record["instance_index"].(float64)
		require.True(t, ok)
		assert.True(t, index >= 0 && index <= 9)

		switch record["event_type"] {
		case "SCALING":
			counts := record["instance_count"].(map[string]any)
			if counts["current"].(float64) > counts["previous"].(float64) {
				assert.Equal(t, "Increased load detected", record["reason"])
			} else {
				assert.Equal(t, "Decreased load detected", record["reason"])
			}
		case "APP_CRASH":
			assert.Contains(t, record["exit_description"], record["reason"])
		}
	}
}

func TestGenerateDefaults(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	w := doGet(server, "/generate-logs")
	require.Equal(t, http.StatusOK, w.Code)

	records := decodeRecords(t, w)
	assert.Len(t, records, 100)
	assert.Contains(t, records[0], "transactionId")
}

func TestGenerateZeroCount(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	for _, logType := range []string{"payment", "pcf"} {
		w := doGet(server, "/generate-logs?count=0&type="+logType)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	}

	w := doGet(server, "/generate-logs?count=-4")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGenerateInvalidType(t *testing.T) {
	server, metric := newTestHTTP(t, nil)

	for _, target := range []string{
		"/generate-logs?type=foo",
		"/generate-logs?type=foo&count=5",
		"/generate-logs?type=foo&count=abc",
		"/generate-logs?type=",
	} {
		w := doGet(server, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.JSONEq(t, `{"error": "Invalid log type. Use 'payment' or 'pcf'."}`, w.Body.String(), target)
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(metric.GenerateRejectedTotal.WithLabelValues("invalid_type")))
}

func TestGenerateInvalidParameters(t *testing.T) {
	server, _ := newTestHTTP(t, &service.Config{MaxCount: 50})

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"count over maximum", "/generate-logs?count=51", "Count exceeds maximum of 50."},
		{"negative seed", "/generate-logs?seed=-1", "Invalid seed. Use an unsigned integer."},
		{"unknown format", "/generate-logs?format=xml", "Invalid format. Use 'json' or 'otlp'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(server, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response["error"])
		})
	}
}

func TestGenerateMalformedCountUsesDefault(t *testing.T) {
	server, metric := newTestHTTP(t, nil)

	tests := []struct {
		name   string
		target string
	}{
		{"non-integer count", "/generate-logs?count=abc&type=payment"},
		{"fractional count", "/generate-logs?count=1.5"},
		{"empty count", "/generate-logs?count="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(server, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decodeRecords(t, w), 100)
		})
	}

	assert.Equal(t, 300.0, testutil.ToFloat64(metric.GenerateRecordsTotal.WithLabelValues("payment")))
}

func TestGenerateCountWithSurroundingSpaces(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	w := doGet(server, "/generate-logs?count=%203%20&type=pcf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeRecords(t, w), 3)
}

func TestGenerateSeededReplay(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	first := doGet(server, "/generate-logs?count=8&type=pcf&seed=1234")
	second := doGet(server, "/generate-logs?count=8&type=pcf&seed=1234")
	other := doGet(server, "/generate-logs?count=8&type=pcf&seed=1235")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.NotEqual(t, first.Body.String(), other.Body.String())
}

func TestGenerateOTLPFormat(t *testing.T) {
	server, _ := newTestHTTP(t, nil)

	w := doGet(server, "/generate-logs?count=6&type=payment&format=otlp")
	require.Equal(t, http.StatusOK, w.Code)

	req := plogotlp.NewExportRequest()
	require.NoError(t, req.UnmarshalJSON(w.Body.Bytes()))
	assert.Equal(t, 6, req.Logs().LogRecordCount())
}

func TestHTTPConfig(t *testing.T) {
	config := &HTTPConfig{
		Host: "0.0.0.0",
		Port: "8080",
	}

	assert.Equal(t, "0.0.0.0", config.Host)
	assert.Equal(t, "8080", config.Port)
}
