package workflow

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Evayanr/hike-organizer/internal/notify"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		wf := svc.Create()
		return c.Status(fiber.StatusCreated).JSON(wf.View())
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		return c.JSON(wf.View())
	})

	r.Get("/:id/themes", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		themes, err := svc.ThemeChoices(wf)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{"themes": themes})
	})

	r.Post("/:id/route", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			RouteID string `json:"route_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id required")
		}
		if err := svc.SelectRoute(c.Context(), wf, req.RouteID); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/theme", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			Theme string `json:"theme"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.ChooseTheme(c.Context(), wf, req.Theme); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/background", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			URL string `json:"url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.URL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "url required")
		}
		if err := svc.ChooseBackgroundURL(c.Context(), wf, req.URL); err != nil {
			if errors.Is(err, ErrPrecondition) {
				return mapError(err)
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/options", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			Year     int    `json:"year"`
			Month    int    `json:"month"`
			Location string `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Year < 1 || req.Month < 1 || req.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "valid year and month required")
		}
		if err := svc.GenerateVoteOptions(c.Context(), wf, req.Year, req.Month, req.Location); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/deadline", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			Deadline time.Time `json:"deadline"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SetDeadline(c.Context(), wf, req.Deadline); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/poster", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		if err := svc.GeneratePoster(c.Context(), wf); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/publish", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		if err := svc.Publish(c.Context(), wf); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/decide", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		var req struct {
			Date string `json:"date"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.DecideDate(c.Context(), wf, req.Date); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})

	r.Post("/:id/group", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		stored, err := svc.CreateGroup(c.Context(), wf)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	})

	r.Post("/:id/cancel", func(c *fiber.Ctx) error {
		wf, err := svc.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "workflow not found")
		}
		if err := svc.Cancel(c.Context(), wf); err != nil {
			return mapError(err)
		}
		return c.JSON(wf.View())
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrPrecondition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, notify.ErrDeliveryFailed), errors.Is(err, notify.ErrNotConfigured):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
