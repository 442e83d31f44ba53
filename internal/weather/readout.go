package weather

// Reading is a value paired with the unit label it should be displayed with.
type Reading struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// CurrentReadout is the headline card: condition, temperature and wind.
type CurrentReadout struct {
	Condition   Condition `json:"condition"`
	IsDay       bool      `json:"isDay"`
	Temperature Reading   `json:"temperature"`
	FeelsLike   Reading   `json:"feelsLike"`
	Wind        Reading   `json:"wind"`
	WindDir     string    `json:"windDir"`
}

// DetailsReadout is the secondary metrics grid of the detailed view.
type DetailsReadout struct {
	Humidity      int         `json:"humidity"`
	Cloud         int         `json:"cloud"`
	UV            float64     `json:"uv"`
	Pressure      Reading     `json:"pressure"`
	Visibility    Reading     `json:"visibility"`
	Precipitation Reading     `json:"precipitation"`
	Gust          Reading     `json:"gust"`
	AirQuality    *AirQuality `json:"airQuality,omitempty"`
}

// DayReadout is one row of the multi-day forecast.
type DayReadout struct {
	Date         string    `json:"date"`
	Condition    Condition `json:"condition"`
	Max          Reading   `json:"max"`
	Min          Reading   `json:"min"`
	ChanceOfRain int       `json:"chanceOfRain"`
	Sunrise      string    `json:"sunrise"`
	Sunset       string    `json:"sunset"`
}

// HourReadout is one tile of the hourly view.
type HourReadout struct {
	Time         string    `json:"time"`
	Condition    Condition `json:"condition"`
	IsDay        bool      `json:"isDay"`
	Temperature  Reading   `json:"temperature"`
	ChanceOfRain int       `json:"chanceOfRain"`
}

// Readout is the unit-resolved projection of a Snapshot for one view mode.
// Only the sections the view renders are populated.
type Readout struct {
	View     ViewMode        `json:"view"`
	Units    UnitSystem      `json:"units"`
	Location Location        `json:"location"`
	Current  *CurrentReadout `json:"current,omitempty"`
	Details  *DetailsReadout `json:"details,omitempty"`
	Days     []DayReadout    `json:"days,omitempty"`
	Hours    []HourReadout   `json:"hours,omitempty"`
	Alerts   []Alert         `json:"alerts,omitempty"`
}

// hourlyStride thins the hourly view to every second hour.
const hourlyStride = 2

// NewReadout projects s for the given units and view.
func NewReadout(s *Snapshot, units UnitSystem, view ViewMode) Readout {
	r := Readout{View: view, Units: units, Location: s.Location}
	if s.Alerts != nil {
		r.Alerts = s.Alerts.Alert
	}

	switch view {
	case ViewSummary:
		r.Current = currentReadout(s.Current, units)
		r.Days = dayReadouts(s.Forecast, units)
	case ViewDetailed:
		r.Current = currentReadout(s.Current, units)
		r.Details = detailsReadout(s.Current, units)
	case ViewForecast:
		r.Days = dayReadouts(s.Forecast, units)
	case ViewHourly:
		r.Hours = hourReadouts(s.Forecast, units)
	}
	return r
}

func currentReadout(c Current, u UnitSystem) *CurrentReadout {
	return &CurrentReadout{
		Condition:   c.Condition,
		IsDay:       c.IsDay == 1,
		Temperature: Reading{c.Temperature(u), u.TemperatureUnit()},
		FeelsLike:   Reading{c.FeelsLike(u), u.TemperatureUnit()},
		Wind:        Reading{c.Wind(u), u.SpeedUnit()},
		WindDir:     c.WindDir,
	}
}

func detailsReadout(c Current, u UnitSystem) *DetailsReadout {
	return &DetailsReadout{
		Humidity:      c.Humidity,
		Cloud:         c.Cloud,
		UV:            c.UV,
		Pressure:      Reading{c.Pressure(u), u.PressureUnit()},
		Visibility:    Reading{c.Visibility(u), u.DistanceUnit()},
		Precipitation: Reading{c.Precip(u), u.PrecipitationUnit()},
		Gust:          Reading{c.Gust(u), u.SpeedUnit()},
		AirQuality:    c.AirQuality,
	}
}

func dayReadouts(f *Forecast, u UnitSystem) []DayReadout {
	if f == nil {
		return nil
	}
	out := make([]DayReadout, 0, len(f.ForecastDay))
	for _, fd := range f.ForecastDay {
		out = append(out, DayReadout{
			Date:         fd.Date,
			Condition:    fd.Day.Condition,
			Max:          Reading{fd.Day.MaxTemp(u), u.TemperatureUnit()},
			Min:          Reading{fd.Day.MinTemp(u), u.TemperatureUnit()},
			ChanceOfRain: fd.Day.DailyChanceOfRain,
			Sunrise:      fd.Astro.Sunrise,
			Sunset:       fd.Astro.Sunset,
		})
	}
	return out
}

func hourReadouts(f *Forecast, u UnitSystem) []HourReadout {
	if f == nil || len(f.ForecastDay) == 0 {
		return nil
	}
	hours := f.ForecastDay[0].Hour
	out := make([]HourReadout, 0, (len(hours)+hourlyStride-1)/hourlyStride)
	for i := 0; i < len(hours); i += hourlyStride {
		h := hours[i]
		out = append(out, HourReadout{
			Time:         h.Time,
			Condition:    h.Condition,
			IsDay:        h.IsDay == 1,
			Temperature:  Reading{h.Temperature(u), u.TemperatureUnit()},
			ChanceOfRain: h.ChanceOfRain,
		})
	}
	return out
}
