package weather

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// HoursPerDay is the number of hourly entries every forecast day must carry.
const HoursPerDay = 24

var validate = validator.New()

// Validate checks that a decoded payload is complete enough for views to use
// without special cases. It enforces the struct tags plus the hourly invariant
// on the first forecast day.
func (s *Snapshot) Validate() error {
	if s == nil {
		return errors.New("empty weather payload")
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid weather payload: %w", err)
	}
	if s.Forecast == nil {
		return nil
	}

	hours := s.Forecast.ForecastDay[0].Hour
	if len(hours) != HoursPerDay {
		return fmt.Errorf("invalid weather payload: first forecast day has %d hourly entries, want %d", len(hours), HoursPerDay)
	}
	for i := 1; i < len(hours); i++ {
		if hours[i].TimeEpoch <= hours[i-1].TimeEpoch {
			return fmt.Errorf("invalid weather payload: hourly entry %d (%s) is not after %s", i, hours[i].Time, hours[i-1].Time)
		}
	}
	return nil
}
