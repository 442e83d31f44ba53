package providers

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/i474232898/weather-hub/internal/weather"
)

// apiTimeLayout is the local-time format WeatherAPI uses for time strings.
const apiTimeLayout = "2006-01-02 15:04"

const syntheticDefaultLocation = "London"

var syntheticCondition = weather.Condition{
	Text: "Partly cloudy",
	Icon: "//cdn.weatherapi.com/weather/64x64/day/116.png",
	Code: 1003,
}

// SyntheticProvider stands in for the weather API when no key is configured.
// It returns a complete payload of the same type as the real one, so nothing
// downstream needs to know which provider produced it.
type SyntheticProvider struct {
	days int
	now  func() time.Time
}

func NewSyntheticProvider(days int) *SyntheticProvider {
	if days <= 0 {
		days = DefaultForecastDays
	}
	return &SyntheticProvider{days: days, now: time.Now}
}

func (p *SyntheticProvider) Name() string {
	return "synthetic"
}

// Forecast builds the payload for query. Only the location name depends on
// the query.
func (p *SyntheticProvider) Forecast(ctx context.Context, query string) (*weather.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, 0, "Request was cancelled", err)
	}

	name := strings.TrimSpace(query)
	if name == "" {
		name = syntheticDefaultLocation
	}
	now := p.now().UTC().Truncate(time.Hour)

	snapshot := &weather.Snapshot{
		Location: weather.Location{
			Name:           name,
			Region:         "City of London, Greater London",
			Country:        "United Kingdom",
			Lat:            51.52,
			Lon:            -0.11,
			TzID:           "Europe/London",
			LocaltimeEpoch: now.Unix(),
			Localtime:      now.Format(apiTimeLayout),
		},
		Current: weather.Current{
			LastUpdatedEpoch: now.Unix(),
			LastUpdated:      now.Format(apiTimeLayout),
			TempC:            15,
			TempF:            59,
			IsDay:            1,
			Condition:        syntheticCondition,
			WindMph:          5.6,
			WindKph:          9,
			WindDegree:       220,
			WindDir:          "SW",
			PressureMb:       1012,
			PressureIn:       29.88,
			Humidity:         72,
			Cloud:            50,
			FeelslikeC:       15,
			FeelslikeF:       59,
			VisKm:            10,
			VisMiles:         6,
			UV:               4,
			GustMph:          8.1,
			GustKph:          13,
			AirQuality: &weather.AirQuality{
				CO:           230.3,
				NO2:          13.5,
				O3:           54.2,
				SO2:          2.1,
				PM25:         6.4,
				PM10:         9.8,
				USEPAIndex:   1,
				GBDefraIndex: 1,
			},
		},
		Forecast: &weather.Forecast{ForecastDay: make([]weather.ForecastDay, 0, p.days)},
		Alerts:   &weather.Alerts{Alert: []weather.Alert{}},
	}

	for d := 0; d < p.days; d++ {
		snapshot.Forecast.ForecastDay = append(snapshot.Forecast.ForecastDay, syntheticDay(now.AddDate(0, 0, d)))
	}
	return snapshot, nil
}

// Search is disabled without an API key.
func (p *SyntheticProvider) Search(ctx context.Context, query string) ([]weather.SearchResult, error) {
	return []weather.SearchResult{}, nil
}

func syntheticDay(start time.Time) weather.ForecastDay {
	day := weather.ForecastDay{
		Date:      start.Format("2006-01-02"),
		DateEpoch: start.Unix(),
		Day: weather.Day{
			MaxTempC:      18,
			MaxTempF:      64.4,
			MinTempC:      12,
			MinTempF:      53.6,
			AvgTempC:      15,
			AvgTempF:      59,
			MaxWindMph:    8.7,
			MaxWindKph:    14,
			AvgVisKm:      10,
			AvgVisMiles:   6,
			AvgHumidity:   72,
			Condition:     syntheticCondition,
			UV:            4,
			TotalPrecipMm: 0,
		},
		Astro: weather.Astro{
			Sunrise:          "06:45 AM",
			Sunset:           "07:30 PM",
			Moonrise:         "10:30 PM",
			Moonset:          "08:15 AM",
			MoonPhase:        "Waning Gibbous",
			MoonIllumination: "60",
		},
		Hour: make([]weather.Hour, 0, weather.HoursPerDay),
	}

	for i := 0; i < weather.HoursPerDay; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		wave := math.Sin(float64(i) / weather.HoursPerDay * 2 * math.Pi)
		tempC := 15 + wave*3
		tempF := 59 + wave*5.4

		isDay := 0
		if i > 6 && i < 20 {
			isDay = 1
		}

		day.Hour = append(day.Hour, weather.Hour{
			TimeEpoch:  ts.Unix(),
			Time:       ts.Format(apiTimeLayout),
			TempC:      tempC,
			TempF:      tempF,
			IsDay:      isDay,
			Condition:  syntheticCondition,
			WindMph:    5.6,
			WindKph:    9,
			WindDegree: 220,
			WindDir:    "SW",
			PressureMb: 1012,
			PressureIn: 29.88,
			Humidity:   72,
			Cloud:      50,
			FeelslikeC: tempC,
			FeelslikeF: tempF,
			WindchillC: tempC,
			WindchillF: tempF,
			HeatindexC: tempC,
			HeatindexF: tempF,
			DewpointC:  10,
			DewpointF:  50,
			VisKm:      10,
			VisMiles:   6,
			GustMph:    8.1,
			GustKph:    13,
			UV:         4,
		})
	}
	return day
}
