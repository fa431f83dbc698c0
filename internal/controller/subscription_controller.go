// FILE: internal/controller/subscription_controller.go
package controller

import (
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/pkg/serverutils"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service      service.ISubscriptionService
	entitlements service.IEntitlementService
}

func NewSubscriptionController(svc service.ISubscriptionService, entitlements service.IEntitlementService) ISubscriptionController {
	return &subscriptionController{service: svc, entitlements: entitlements}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscription")

	// Public: plan catalog and the gateway notification endpoint.
	h.Get("/plans", c.GetPlans)
	h.Post("/gateway/notification", c.Webhook)

	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
	h.Get("/status", serverutils.JwtMiddleware, c.GetStatus)
	h.Post("/cancel", serverutils.JwtMiddleware, c.Cancel)
}

func (c *subscriptionController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.entitlements.ListPlans(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", res))
}

func (c *subscriptionController) Checkout(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Checkout criado.", res))
}

func (c *subscriptionController) Webhook(ctx *fiber.Ctx) error {
	var req dto.GatewayWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := c.service.HandleWebhook(ctx.Context(), &req); err != nil {
		return toHTTPError(err)
	}
	// The gateway only cares about the 200.
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *subscriptionController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetStatus(ctx.Context(), userId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching subscription", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CancelSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CancelSubscription(ctx.Context(), userId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(res)
}
