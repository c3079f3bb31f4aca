package activity

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "activity not found")
		}
		return c.JSON(a)
	})

	r.Put("/:id/status", func(c *fiber.Ctx) error {
		var body struct {
			Status Status `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil || body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status required")
		}
		a, err := svc.AdvanceStatus(c.Context(), c.Params("id"), body.Status)
		if err != nil {
			if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrStatusRegression) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(a)
	})

	r.Get("/:id/options", func(c *fiber.Ctx) error {
		options, err := svc.ListVoteOptions(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(options)
	})

	r.Get("/:id/winner", func(c *fiber.Ctx) error {
		opt, err := svc.MaxVoteOption(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no vote options")
		}
		return c.JSON(opt)
	})

	r.Put("/options/:optionID/count", func(c *fiber.Ctx) error {
		optionID, err := strconv.ParseInt(c.Params("optionID"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid option id")
		}
		var body struct {
			Count int `json:"count"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.UpdateVoteCount(c.Context(), optionID, body.Count); err != nil {
			if errors.Is(err, ErrNegativeVoteCount) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
