package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/marine-forecast/internal/scheduler"
	"github.com/i474232898/marine-forecast/internal/store"
	"github.com/i474232898/marine-forecast/internal/weather"
)

var validate = validator.New()

// Forecaster answers forecast queries.
type Forecaster interface {
	ForTime(t time.Time) (weather.Lookup, error)
	Current() (weather.Snapshot, error)
}

// Trigger starts refreshes out of schedule and reports on past ones.
type Trigger interface {
	TriggerNow() error
	Status() scheduler.Status
}

// nowResponse is the body of a successful window query.
type nowResponse struct {
	SnapshotID  uuid.UUID           `json:"snapshotId"`
	Spot        string              `json:"spot"`
	FetchedAt   time.Time           `json:"fetchedAt"`
	QueryTime   time.Time           `json:"queryTime"`
	Fallback    bool                `json:"fallback"`
	LocalTime   string              `json:"localTime"`
	Observation weather.Observation `json:"observation"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. trigger may be nil
// when no scheduler is running.
func RegisterRoutes(app *fiber.App, service Forecaster, trigger Trigger, zones *ZoneCache) {
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "marine-forecast",
			"warm":    false,
		}
		if snap, err := service.Current(); err == nil {
			body["warm"] = true
			body["snapshotId"] = snap.ID
			body["fetchedAt"] = snap.FetchedAt
		}
		if trigger != nil {
			body["refresh"] = trigger.Status()
		}
		return c.JSON(body)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/forecast/now", func(c *fiber.Ctx) error {
		var q nowQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := zones.Load(q.TZ)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown time zone")
		}

		at := time.Now()
		if q.At != "" {
			at, _ = time.Parse(time.RFC3339, q.At)
		}

		lookup, err := service.ForTime(at)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "forecast not loaded yet")
			case errors.Is(err, store.ErrNoSlot):
				return c.SendStatus(fiber.StatusNoContent)
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to look up forecast")
			}
		}

		if lookup.Fallback {
			c.Set("X-Forecast-Fallback", "true")
		}
		return c.JSON(nowResponse{
			SnapshotID:  lookup.SnapshotID,
			Spot:        lookup.Spot,
			FetchedAt:   lookup.FetchedAt,
			QueryTime:   at.In(loc),
			Fallback:    lookup.Fallback,
			LocalTime:   lookup.Observation.Timestamp.In(loc).Format(time.RFC3339),
			Observation: lookup.Observation,
		})
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		snap, err := service.Current()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "forecast not loaded yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}
		return c.JSON(snap)
	})

	v1.Post("/forecast/refresh", func(c *fiber.Ctx) error {
		if trigger == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "refresh scheduler not configured")
		}
		if err := trigger.TriggerNow(); err != nil {
			if errors.Is(err, scheduler.ErrNotRunning) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "refresh scheduler not running")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to trigger refresh")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "refresh triggered"})
	})
}

// ErrorHandler renders handler errors as a JSON body with the error's status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// nowQuery holds query parameters for the window query endpoint.
type nowQuery struct {
	At string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	TZ string `validate:"omitempty,timezone"`
}

func (q *nowQuery) bind(c *fiber.Ctx) error {
	q.At = c.Query("at")
	q.TZ = c.Query("tz")
	return validate.Struct(q)
}
