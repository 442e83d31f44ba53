package httpapi

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/i474232898/weather-hub/internal/dashboard"
	"github.com/i474232898/weather-hub/internal/geo"
	"github.com/i474232898/weather-hub/internal/search"
	"github.com/i474232898/weather-hub/internal/weather"
)

var validate = newValidator()

// eventsHeartbeat is how often an idle event stream writes a comment line, so
// a dropped client is noticed and unsubscribed.
var eventsHeartbeat = 15 * time.Second

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Services are the collaborators the HTTP layer turns requests into calls on.
type Services struct {
	Dashboard *dashboard.Container
	Suggester *search.Suggester
	Client    weather.Client
	Locator   geo.Locator
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Services) {
	v1 := app.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(svc.Dashboard.Snapshot())
	})

	v1.Get("/events", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		updates, cancel := svc.Dashboard.Subscribe()
		heartbeat := eventsHeartbeat
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()

			ticker := time.NewTicker(heartbeat)
			defer ticker.Stop()

			for {
				select {
				case state, ok := <-updates:
					if !ok {
						return
					}
					if err := writeEvent(w, state); err != nil {
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": ping\n\n"); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		}))
		return nil
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		state := svc.Dashboard.Snapshot()
		if state.WeatherData == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data loaded yet")
		}
		return c.JSON(state.WeatherData)
	})

	v1.Get("/weather/view", func(c *fiber.Ctx) error {
		state := svc.Dashboard.Snapshot()
		if state.WeatherData == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data loaded yet")
		}

		units, view := state.Units, state.View
		if q := c.Query("units"); q != "" {
			u, err := weather.ParseUnitSystem(q)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			units = u
		}
		if q := c.Query("view"); q != "" {
			v, err := weather.ParseViewMode(q)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			view = v
		}

		return c.JSON(weather.NewReadout(state.WeatherData, units, view))
	})

	v1.Put("/location", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		svc.Dashboard.SetLocation(req.Query)
		return c.Status(fiber.StatusAccepted).JSON(svc.Dashboard.Snapshot())
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		// The outcome, including any error, is part of the returned state.
		if err := svc.Dashboard.RefreshWeather(c.UserContext()); err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
			log.Printf("refresh request failed: %v", err)
		}
		return c.JSON(svc.Dashboard.Snapshot())
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req favoriteRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		svc.Dashboard.AddFavorite(req.toFavorite())
		return c.Status(fiber.StatusCreated).JSON(svc.Dashboard.Snapshot().Favorites)
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		svc.Dashboard.RemoveFavorite(c.Params("id"))
		return c.JSON(svc.Dashboard.Snapshot().Favorites)
	})

	v1.Put("/units", func(c *fiber.Ctx) error {
		var req unitsRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		svc.Dashboard.SetUnits(weather.UnitSystem(req.Units))
		return c.JSON(svc.Dashboard.Snapshot())
	})

	v1.Put("/view", func(c *fiber.Ctx) error {
		var req viewRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		svc.Dashboard.SetView(weather.ViewMode(req.View))
		return c.JSON(svc.Dashboard.Snapshot())
	})

	v1.Put("/theme", func(c *fiber.Ctx) error {
		var req themeRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		svc.Dashboard.SetTheme(weather.Theme(req.Theme))
		return c.JSON(svc.Dashboard.Snapshot())
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		results, err := svc.Client.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, weather.MessageOf(err))
		}
		if results == nil {
			results = []weather.SearchResult{}
		}
		return c.JSON(results)
	})

	v1.Put("/search/query", func(c *fiber.Ctx) error {
		var req searchInputRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		svc.Suggester.SetQuery(req.Query)
		return c.JSON(svc.Suggester.State())
	})

	v1.Get("/search/suggestions", func(c *fiber.Ctx) error {
		return c.JSON(svc.Suggester.State())
	})

	v1.Get("/geolocation", func(c *fiber.Ctx) error {
		pos, err := svc.Locator.Locate(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{
			"latitude":  pos.Latitude,
			"longitude": pos.Longitude,
			"query":     pos.Query(),
		})
	})
}

func writeEvent(w *bufio.Writer, state dashboard.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("events: failed to encode state: %v", err)
		return err
	}
	if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// bindAndValidate parses the JSON body into req and runs its validate tags.
func bindAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

type locationRequest struct {
	Query string `json:"query" validate:"required,notblank"`
}

type favoriteRequest struct {
	ID   string   `json:"id"`
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon  *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// toFavorite fills in the conventional "{lat}-{lon}" id when none was given.
func (f favoriteRequest) toFavorite() weather.FavoriteLocation {
	fav := weather.FavoriteLocation{ID: f.ID, Name: f.Name, Lat: *f.Lat, Lon: *f.Lon}
	if fav.ID == "" {
		fav.ID = weather.FavoriteID(fav.Lat, fav.Lon)
	}
	return fav
}

type unitsRequest struct {
	Units string `json:"units" validate:"required,oneof=metric imperial"`
}

type viewRequest struct {
	View string `json:"view" validate:"required,oneof=summary detailed forecast hourly"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

type searchInputRequest struct {
	Query string `json:"query"`
}
