package opendata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/opendata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseResourceID(t *testing.T) {
	fy, quarter, final, err := opendata.ParseResourceID("CONSOL_PHARMACY_LIST_202526Q1FINAL")
	require.NoError(t, err)
	assert.Equal(t, "2025/26", fy)
	assert.Equal(t, 1, quarter)
	assert.True(t, final)

	fy, quarter, final, err = opendata.ParseResourceID("CONSOL_PHARMACY_LIST_202425Q4")
	require.NoError(t, err)
	assert.Equal(t, "2024/25", fy)
	assert.Equal(t, 4, quarter)
	assert.False(t, final)

	_, _, _, err = opendata.ParseResourceID("EPD_202501")
	require.Error(t, err)
}

func TestFetchPharmacyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CONSOL_PHARMACY_LIST_202526Q1FINAL", r.URL.Query().Get("resource_id"))
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "result": {"total": 10897}}`))
	}))
	defer server.Close()

	client := opendata.NewClient(&config.OpenDataConfig{
		Enabled:        true,
		BaseURL:        server.URL,
		ResourceID:     "CONSOL_PHARMACY_LIST_202526Q1FINAL",
		RequestTimeout: 5,
	}, zap.NewNop())
	require.True(t, client.IsEnabled())

	list, err := client.FetchPharmacyList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10897, list.PharmacyCount)
	assert.Equal(t, "2025/26", list.FinancialYear)
	assert.Equal(t, 1, list.Quarter)
	assert.True(t, list.Final)
}

func TestFetchPharmacyList_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": {"message": "Not found"}}`))
	}))
	defer server.Close()

	client := opendata.NewClient(&config.OpenDataConfig{
		Enabled:        true,
		BaseURL:        server.URL,
		ResourceID:     "CONSOL_PHARMACY_LIST_202526Q1FINAL",
		RequestTimeout: 5,
	}, zap.NewNop())

	_, err := client.FetchPharmacyList(context.Background())
	require.Error(t, err)
}

func TestNewClient_Disabled(t *testing.T) {
	client := opendata.NewClient(&config.OpenDataConfig{Enabled: false}, zap.NewNop())
	assert.False(t, client.IsEnabled())
}
