// FILE: internal/controller/report_controller.go
package controller

import (
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/pkg/serverutils"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	CreateReport(ctx *fiber.Ctx) error
	ListReports(ctx *fiber.Ctx) error
	FormatReport(ctx *fiber.Ctx) error
	GetUsage(ctx *fiber.Ctx) error
}

type reportController struct {
	service service.IReportService
}

func NewReportController(service service.IReportService) IReportController {
	return &reportController{service: service}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports", serverutils.JwtMiddleware)
	h.Post("/", c.CreateReport)
	h.Get("/", c.ListReports)
	h.Get("/usage", c.GetUsage)
	h.Post("/:id/format", c.FormatReport)
}

func (c *reportController) CreateReport(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateReport(ctx.Context(), userId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Relatório criado.", res))
}

func (c *reportController) ListReports(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListReports(ctx.Context(), userId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching reports", res))
}

func (c *reportController) FormatReport(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	reportId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.FormatReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		req = dto.FormatReportRequest{} // body is optional
	}

	res, err := c.service.FormatReport(ctx.Context(), userId, reportId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success formatting report", res))
}

func (c *reportController) GetUsage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetUsage(ctx.Context(), userId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching usage", res))
}
