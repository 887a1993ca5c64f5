package httpapi

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Pipeline produces the 12 monthly summaries for a query.
type Pipeline interface {
	Run(ctx context.Context, q weather.Query) ([]weather.MonthSummary, error)
}

// RegisterRoutes wires the dashboard data endpoint into the Fiber app.
func RegisterRoutes(app *fiber.App, pipeline Pipeline) {
	app.Post("/weather-data", func(c *fiber.Ctx) error {
		var req dataRequest
		req.bind(c)

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		q, err := weather.ParseQuery(req.Year, req.StartMonth, req.EndMonth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summaries, err := pipeline.Run(c.UserContext(), q)
		if err != nil {
			// Failures carry no body; the dashboard renders its own message.
			return c.Status(fiber.StatusInternalServerError).Send(nil)
		}

		return c.JSON(summaries)
	})
}

// RegisterAssets serves the dashboard's static files from dir and answers
// every unmatched path with a plain-text 404. Register it last.
func RegisterAssets(app *fiber.App, dir string) {
	app.Static("/", dir, fiber.Static{
		Index: "index.html",
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("resource not found!")
	})
}

// dataRequest holds the URL-encoded form sent by the dashboard.
type dataRequest struct {
	Year       string `validate:"required"`
	StartMonth string `validate:"required"`
	EndMonth   string `validate:"required"`
}

func (r *dataRequest) bind(c *fiber.Ctx) {
	r.Year = c.FormValue("year")
	r.StartMonth = c.FormValue("startMonth")
	r.EndMonth = c.FormValue("endMonth")
}
