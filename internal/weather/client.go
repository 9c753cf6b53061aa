package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/validation"
)

// ErrNoForecast is returned when the service has no data for an area.
var ErrNoForecast = errors.New("no forecast data for area")

// Forecast is a single timeslot in the public BMKG forecast feed.
type Forecast struct {
	Time        time.Time
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Description string
}

type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

func NewClient(cfg *config.Config) (*Client, error) {
	validator := validation.NewServiceURLValidator()
	if cfg.API.AllowLocalhost {
		validator = validation.NewPermissiveServiceURLValidator()
	}
	baseURL, err := validator.ValidateAndNormalize(cfg.Weather.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather base URL: %w", err)
	}

	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: cfg.Weather.Timeout},
		userAgent: cfg.API.UserAgent,
	}, nil
}

// Forecasts fetches the timeslot forecasts for an adm4 area code.
func (c *Client) Forecasts(ctx context.Context, areaCode string) ([]Forecast, error) {
	areaCode = strings.TrimSpace(areaCode)
	if areaCode == "" {
		return nil, errors.New("area code is required")
	}

	u := c.baseURL + "/publik/prakiraan-cuaca?adm4=" + url.QueryEscape(areaCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var wire forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}

	if len(wire.Data) == 0 {
		return nil, ErrNoForecast
	}

	slots := wire.Data[0].Cuaca.flatten()
	if len(slots) == 0 {
		return nil, ErrNoForecast
	}

	forecasts := make([]Forecast, 0, len(slots))
	for _, s := range slots {
		forecasts = append(forecasts, Forecast{
			Time:        parseForecastTime(s.Datetime),
			Temperature: s.T,
			Humidity:    s.Hu,
			WindSpeed:   s.Ws,
			Description: s.WeatherDesc,
		})
	}
	return forecasts, nil
}

type forecastResponse struct {
	Data []struct {
		Cuaca slotGroups `json:"cuaca"`
	} `json:"data"`
}

type slot struct {
	Datetime    string  `json:"datetime"`
	T           float64 `json:"t"`
	Hu          float64 `json:"hu"`
	Ws          float64 `json:"ws"`
	WeatherDesc string  `json:"weather_desc"`
}

// slotGroups accepts both the day-grouped form the service documents
// and the flat form older responses used.
type slotGroups [][]slot

func (g *slotGroups) UnmarshalJSON(data []byte) error {
	var grouped [][]slot
	if err := json.Unmarshal(data, &grouped); err == nil {
		*g = grouped
		return nil
	}
	var flat []slot
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*g = slotGroups{flat}
	return nil
}

func (g slotGroups) flatten() []slot {
	var out []slot
	for _, day := range g {
		out = append(out, day...)
	}
	return out
}

func parseForecastTime(raw string) time.Time {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
