// FILE: internal/controller/admin_controller.go
package controller

import (
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/pkg/serverutils"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service     service.IAdminService
	invitations service.IInvitationService
}

func NewAdminController(svc service.IAdminService, invitations service.IInvitationService) IAdminController {
	return &adminController{service: svc, invitations: invitations}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/dashboard", c.GetDashboard)
	h.Get("/logs", c.GetLogs)

	h.Get("/users", c.ListUsers)
	h.Put("/users/:id/status", c.UpdateUserStatus)
	h.Post("/users/lead", c.CreateLeadUser)

	h.Post("/plans", c.CreatePlan)
	h.Put("/plans/:id", c.UpdatePlan)
	h.Delete("/plans/:id", c.DeletePlan)

	h.Get("/policies", c.ListPolicies)
	h.Put("/policies", c.UpsertPolicy)
	h.Delete("/policies/:id", c.DeletePolicy)

	h.Post("/reconcile-subscriptions", c.ReconcileSubscriptions)
	h.Post("/gateway/simulate", c.SimulateGatewayCallback)
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboard(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching dashboard", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.AdminLogQueryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.GetLogs(req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching logs", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.ListUsers(ctx.Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching users", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	if err := c.service.UpdateUserStatus(ctx.Context(), userId, &req); err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Status atualizado.", nil))
}

func (c *adminController) CreateLeadUser(ctx *fiber.Ctx) error {
	var req dto.CreateLeadUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.invitations.CreateLeadUser(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Lead provisionado.", res))
}

func (c *adminController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.UpsertPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreatePlan(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plano criado.", res))
}

func (c *adminController) UpdatePlan(ctx *fiber.Ctx) error {
	planId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdatePlan(ctx.Context(), planId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plano atualizado.", res))
}

func (c *adminController) DeletePlan(ctx *fiber.Ctx) error {
	planId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeletePlan(ctx.Context(), planId); err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plano removido.", nil))
}

func (c *adminController) ListPolicies(ctx *fiber.Ctx) error {
	res, err := c.service.ListPolicies(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching policies", res))
}

func (c *adminController) UpsertPolicy(ctx *fiber.Ctx) error {
	var req dto.UpsertBookingPolicyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpsertPolicy(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Política atualizada.", res))
}

func (c *adminController) DeletePolicy(ctx *fiber.Ctx) error {
	policyId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeletePolicy(ctx.Context(), policyId); err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Política removida.", nil))
}

func (c *adminController) ReconcileSubscriptions(ctx *fiber.Ctx) error {
	res, err := c.service.ReconcileSubscriptions(ctx.Context())
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(res)
}

func (c *adminController) SimulateGatewayCallback(ctx *fiber.Ctx) error {
	var req dto.SimulateGatewayCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SimulateGatewayCallback(ctx.Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Callback simulado.", res))
}
