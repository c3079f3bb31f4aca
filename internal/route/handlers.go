package route

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, disc *Discoverer) {
	r.Get("/", func(c *fiber.Ctx) error {
		routes, err := svc.List(c.Context(), filterFromQuery(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/count", func(c *fiber.Ctx) error {
		count, err := svc.Count(c.Context(), filterFromQuery(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"count": count})
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req Route
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		created, err := svc.Insert(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidDifficulty) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		f := filterFromQuery(c).normalize()
		if f.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location required")
		}
		drafts := disc.FetchRoutes(c.Context(), f.Location, f.MaxDistance, f.MaxElevation, f.MaxDuration)
		report, err := svc.SaveDiscovered(c.Context(), drafts)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	r.Post("/seed", func(c *fiber.Ctx) error {
		report, err := svc.Seed(c.Context(), c.Query("location"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		route, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(route)
	})
}

func filterFromQuery(c *fiber.Ctx) Filter {
	return Filter{
		Location:     c.Query("location"),
		MaxDistance:  queryFloat(c, "max_distance"),
		MaxElevation: queryFloat(c, "max_elevation"),
		MaxDuration:  queryFloat(c, "max_duration"),
		Limit:        c.QueryInt("limit"),
		Offset:       c.QueryInt("offset"),
	}
}

func queryFloat(c *fiber.Ctx, key string) float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0
	}
	return v
}
