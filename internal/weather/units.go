package weather

import "fmt"

// UnitSystem selects which of the dual-unit fields are displayed. It never
// changes what is fetched.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem validates a persisted or user-provided unit system.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch u := UnitSystem(s); u {
	case Metric, Imperial:
		return u, nil
	default:
		return "", fmt.Errorf("unknown unit system %q", s)
	}
}

// ViewMode is a pure presentation selector.
type ViewMode string

const (
	ViewSummary  ViewMode = "summary"
	ViewDetailed ViewMode = "detailed"
	ViewForecast ViewMode = "forecast"
	ViewHourly   ViewMode = "hourly"
)

// ParseViewMode validates a persisted or user-provided view mode.
func ParseViewMode(s string) (ViewMode, error) {
	switch v := ViewMode(s); v {
	case ViewSummary, ViewDetailed, ViewForecast, ViewHourly:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

// Theme is the colour scheme preference of the dashboard.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme validates a persisted or user-provided theme.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

func (u UnitSystem) TemperatureUnit() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

func (u UnitSystem) SpeedUnit() string {
	if u == Imperial {
		return "mph"
	}
	return "km/h"
}

func (u UnitSystem) PressureUnit() string {
	if u == Imperial {
		return "in"
	}
	return "mb"
}

func (u UnitSystem) PrecipitationUnit() string {
	if u == Imperial {
		return "in"
	}
	return "mm"
}

func (u UnitSystem) DistanceUnit() string {
	if u == Imperial {
		return "mi"
	}
	return "km"
}

// pick returns the metric or imperial variant of a dual-unit field.
func (u UnitSystem) pick(metric, imperial float64) float64 {
	if u == Imperial {
		return imperial
	}
	return metric
}

func (c Current) Temperature(u UnitSystem) float64 { return u.pick(c.TempC, c.TempF) }
func (c Current) FeelsLike(u UnitSystem) float64   { return u.pick(c.FeelslikeC, c.FeelslikeF) }
func (c Current) Wind(u UnitSystem) float64        { return u.pick(c.WindKph, c.WindMph) }
func (c Current) Gust(u UnitSystem) float64        { return u.pick(c.GustKph, c.GustMph) }
func (c Current) Pressure(u UnitSystem) float64    { return u.pick(c.PressureMb, c.PressureIn) }
func (c Current) Precip(u UnitSystem) float64      { return u.pick(c.PrecipMm, c.PrecipIn) }
func (c Current) Visibility(u UnitSystem) float64  { return u.pick(c.VisKm, c.VisMiles) }

func (d Day) MaxTemp(u UnitSystem) float64 { return u.pick(d.MaxTempC, d.MaxTempF) }
func (d Day) MinTemp(u UnitSystem) float64 { return u.pick(d.MinTempC, d.MinTempF) }

func (h Hour) Temperature(u UnitSystem) float64 { return u.pick(h.TempC, h.TempF) }
