package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilearn/agrilearn/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.TestConfig()
	cfg.Weather.BaseURL = srv.URL
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestForecastsGroupedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/publik/prakiraan-cuaca", r.URL.Path)
		assert.Equal(t, "31.71.01.1001", r.URL.Query().Get("adm4"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"cuaca":[[
			{"datetime":"2026-08-30T06:00:00Z","t":28,"hu":75,"ws":8,"weather_desc":"Cerah Berawan"},
			{"datetime":"2026-08-30T09:00:00Z","t":31,"hu":65,"ws":12,"weather_desc":"Cerah"}
		],[
			{"datetime":"2026-08-31T06:00:00Z","t":27,"hu":80,"ws":6,"weather_desc":"Hujan Ringan"}
		]]}]}`))
	}))

	forecasts, err := client.Forecasts(context.Background(), "31.71.01.1001")
	require.NoError(t, err)
	require.Len(t, forecasts, 3)

	assert.Equal(t, 28.0, forecasts[0].Temperature)
	assert.Equal(t, 75.0, forecasts[0].Humidity)
	assert.Equal(t, 8.0, forecasts[0].WindSpeed)
	assert.Equal(t, "Cerah Berawan", forecasts[0].Description)
	assert.Equal(t, time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC), forecasts[0].Time)
	assert.Equal(t, "Hujan Ringan", forecasts[2].Description)
}

func TestForecastsFlatResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"cuaca":[
			{"datetime":"2026-08-30 06:00:00","t":30,"hu":70,"ws":10,"weather_desc":"Cerah"}
		]}]}`))
	}))

	forecasts, err := client.Forecasts(context.Background(), "32.04.01.2001")
	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, 30.0, forecasts[0].Temperature)
	assert.Equal(t, time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC), forecasts[0].Time)
}

func TestForecastsEmptyData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.Forecasts(context.Background(), "31.71.01.1001")
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestForecastsServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Forecasts(context.Background(), "31.71.01.1001")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestForecastsRequiresAreaCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach the network")
	}))

	_, err := client.Forecasts(context.Background(), "  ")
	assert.Error(t, err)
}

func TestLoadProvinces(t *testing.T) {
	provinces, err := LoadProvinces()
	require.NoError(t, err)
	require.NotEmpty(t, provinces)

	var jakarta *Province
	for i := range provinces {
		if provinces[i].Code == "31" {
			jakarta = &provinces[i]
		}
	}
	require.NotNil(t, jakarta)
	assert.Equal(t, "DKI Jakarta", jakarta.Name)
	assert.NotEmpty(t, jakarta.Areas)

	for _, a := range jakarta.Areas {
		assert.Contains(t, a.Code, "31.")
	}
}

func TestFindArea(t *testing.T) {
	provinces, err := LoadProvinces()
	require.NoError(t, err)

	area, province, ok := FindArea(provinces, "31.71.01.1001")
	require.True(t, ok)
	assert.Equal(t, "Gambir", area.Name)
	assert.Equal(t, "DKI Jakarta", province.Name)

	_, _, ok = FindArea(provinces, "99.99.99.9999")
	assert.False(t, ok)
}
