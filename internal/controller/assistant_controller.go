package controller

import (
	"encoding/json"
	"errors"

	"cooking-assistant-be/internal/dto"
	"cooking-assistant-be/internal/pkg/serverutils"
	"cooking-assistant-be/internal/service"
	"cooking-assistant-be/pkg/apperr"
	"cooking-assistant-be/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Home(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Modify(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	service   service.IAssistantService
	indexPath string
}

func NewAssistantController(service service.IAssistantService, indexPath string) IAssistantController {
	return &assistantController{
		service:   service,
		indexPath: indexPath,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	r.Get("/", sessionMiddleware, c.Home)

	r.Post("/search/", sessionMiddleware, c.Search)
	r.All("/search/", serverutils.MethodNotAllowed)

	r.Post("/modify/", sessionMiddleware, c.Modify)
	r.All("/modify/", serverutils.MethodNotAllowed)

	r.All("/reset_session/", sessionMiddleware, c.ResetSession)
}

func (c *assistantController) Home(ctx *fiber.Ctx) error {
	return ctx.SendFile(c.indexPath)
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	key, ok := serverutils.SessionKey(ctx)
	if !ok {
		return apperr.Configuration("Session middleware not installed")
	}

	var req dto.SearchRequest
	if err := json.Unmarshal(ctx.Body(), &req); err != nil {
		return apperr.Validation("Invalid JSON format", err)
	}

	res, err := c.service.Search(ctx.UserContext(), key, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res.Body())
}

func (c *assistantController) Modify(ctx *fiber.Ctx) error {
	key, ok := serverutils.SessionKey(ctx)
	if !ok {
		return apperr.Configuration("Session middleware not installed")
	}

	var req dto.ModifyRequest
	if err := json.Unmarshal(ctx.Body(), &req); err != nil {
		return apperr.Validation("Invalid JSON input", nil)
	}

	if err := serverutils.ValidateRequest(req, "Missing recipe or modification"); err != nil {
		return err
	}

	res, err := c.service.Modify(ctx.UserContext(), key, &req)
	if err != nil {
		var modErr *recipe.ModificationError
		if errors.As(err, &modErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(modErr)
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) ResetSession(ctx *fiber.Ctx) error {
	key, ok := serverutils.SessionKey(ctx)
	if !ok {
		return apperr.Configuration("Session middleware not installed")
	}

	res, err := c.service.ResetSession(ctx.UserContext(), key)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
