// FILE: internal/controller/invitation_controller.go
package controller

import (
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/pkg/serverutils"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInvitationController interface {
	RegisterRoutes(r fiber.Router)
	ProcessInvitation(ctx *fiber.Ctx) error
}

type invitationController struct {
	service service.IInvitationService
}

func NewInvitationController(service service.IInvitationService) IInvitationController {
	return &invitationController{service: service}
}

func (c *invitationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/invitations", serverutils.JwtMiddleware)
	h.Post("/process", c.ProcessInvitation)
}

func (c *invitationController) ProcessInvitation(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ProcessInvitationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.ProcessInvitation(ctx.Context(), userId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(res)
}
