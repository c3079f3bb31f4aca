package member

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/members", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Name   string `json:"name"`
			Role   string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.Register(c.Context(), req.UserID, req.Name, req.Role); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Get("/members/:id", func(c *fiber.Ctx) error {
		m, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "member not found")
		}
		return c.JSON(m)
	})

	r.Post("/messages", func(c *fiber.Ctx) error {
		var req struct {
			GroupID string `json:"group_id"`
			UserID  string `json:"user_id"`
			Text    string `json:"text"`
			IsBot   bool   `json:"is_bot"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.GroupID == "" || req.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "group_id and text required")
		}
		msg, err := svc.LogMessage(c.Context(), req.GroupID, req.UserID, req.Text, req.IsBot)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	})

	r.Get("/messages", func(c *fiber.Ctx) error {
		groupID := c.Query("group_id")
		if groupID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "group_id required")
		}
		messages, err := svc.Recent(c.Context(), groupID, c.QueryInt("limit"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(messages)
	})
}
