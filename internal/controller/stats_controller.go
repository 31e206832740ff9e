package controller

import (
	"cooking-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
}

type statsController struct {
	service service.IStatsService
}

func NewStatsController(service service.IStatsService) IStatsController {
	return &statsController{service: service}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	r.Get("/stats/", c.Stats)
}

func (c *statsController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Snapshot())
}
