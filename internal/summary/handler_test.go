package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	v1 "github.com/tapstand/pours/internal/api/v1"
	httperr "github.com/tapstand/pours/internal/core/errors"
	"github.com/tapstand/pours/internal/core/storage"
	"github.com/tapstand/pours/internal/core/storage/memory"
)

func summaryURL(deviceID string, from, to time.Time) string {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))
	return "/v1/taps/" + deviceID + "/summary?" + q.Encode()
}

func newRouter(store storage.SummaryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(store).RegisterRoutes(r)
	return r
}

func TestSummaryHandler_Success(t *testing.T) {
	store := memory.NewStore()
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	_, err := store.TryInsert(context.Background(), &v1.PourEvent{
		EventID:    "11111111-1111-1111-1111-111111111111",
		DeviceID:   "tap-001",
		LocationID: "london-soho-01",
		ProductID:  "guinness",
		StartedAt:  at,
		EndedAt:    at.Add(5 * time.Second),
		VolumeMl:   500,
	})
	require.NoError(t, err)

	r := newRouter(store)

	// Zero-width window exactly on the pour's startedAt.
	req := httptest.NewRequest(http.MethodGet, summaryURL("tap-001", at, at), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var result v1.DeviceSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, int64(500), result.TotalVolumeMl)
	require.Equal(t, int64(1), result.TotalPours)
	require.Equal(t, "guinness", result.TopProduct)
	require.Equal(t, "london-soho-01", result.TopLocation)
}

func TestSummaryHandler_EmptyDevice(t *testing.T) {
	r := newRouter(memory.NewStore())

	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, summaryURL("tap-quiet", from, from.Add(time.Hour)), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.JSONEq(t, `[]`, string(body["byProduct"]))
	require.JSONEq(t, `[]`, string(body["byLocation"]))
	require.NotContains(t, body, "topProduct")
	require.NotContains(t, body, "topLocation")
}

func TestSummaryHandler_InvertedWindowRejected(t *testing.T) {
	r := newRouter(memory.NewStore())

	from := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, summaryURL("tap-001", from, from.Add(-time.Second)), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body struct {
		Errors []struct {
			Field string `json:"field"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	require.Equal(t, "to", body.Errors[0].Field)
}

func TestSummaryHandler_MissingWindowRejected(t *testing.T) {
	r := newRouter(memory.NewStore())

	req := httptest.NewRequest(http.MethodGet, "/v1/taps/tap-001/summary", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSummaryHandler_StoreFailureMapsTo503(t *testing.T) {
	r := newRouter(&stubSummaryStore{productErr: errors.New("connection refused")})

	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, summaryURL("tap-001", from, from.Add(time.Hour)), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpStorageUnavailableError, errResp.ErrorType)
}
