package faq

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		entries, err := svc.All(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entries)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
			Category string `json:"category"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Question == "" || req.Answer == "" {
			return fiber.NewError(fiber.StatusBadRequest, "question and answer required")
		}
		entry, err := svc.Insert(c.Context(), req.Question, req.Answer, req.Category)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	r.Get("/match", func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q required")
		}
		entry, err := svc.Match(c.Context(), q)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no matching question")
		}
		return c.JSON(entry)
	})

	r.Post("/seed", func(c *fiber.Ctx) error {
		inserted, err := svc.Seed(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"inserted": inserted})
	})
}
