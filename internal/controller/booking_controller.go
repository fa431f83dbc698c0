// FILE: internal/controller/booking_controller.go
package controller

import (
	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/serverutils"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	ListServices(ctx *fiber.Ctx) error
	ListMyServices(ctx *fiber.Ctx) error
	CreateService(ctx *fiber.Ctx) error
	UpdateService(ctx *fiber.Ctx) error
	CreateBooking(ctx *fiber.Ctx) error
	RescheduleBooking(ctx *fiber.Ctx) error
	CancelBooking(ctx *fiber.Ctx) error
	GetBookingDetail(ctx *fiber.Ctx) error
	ListMyBookings(ctx *fiber.Ctx) error
	ListMentorAgenda(ctx *fiber.Ctx) error
}

type bookingController struct {
	service service.IBookingService
}

func NewBookingController(service service.IBookingService) IBookingController {
	return &bookingController{service: service}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookings", serverutils.JwtMiddleware)

	h.Get("/services", c.ListServices)
	h.Get("/services/mine", serverutils.RequireRole(string(entity.UserRoleMentor)), c.ListMyServices)
	h.Post("/services", serverutils.RequireRole(string(entity.UserRoleMentor)), c.CreateService)
	h.Put("/services/:id", serverutils.RequireRole(string(entity.UserRoleMentor)), c.UpdateService)

	h.Post("/", c.CreateBooking)
	h.Get("/", c.ListMyBookings)
	h.Get("/agenda", serverutils.RequireRole(string(entity.UserRoleMentor)), c.ListMentorAgenda)
	h.Get("/:id", c.GetBookingDetail)
	h.Put("/:id/reschedule", c.RescheduleBooking)
	h.Post("/:id/cancel", c.CancelBooking)
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id format")
	}
	return id, nil
}

func (c *bookingController) ListServices(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListServices(ctx.Context(), &userId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching services", res))
}

func (c *bookingController) ListMyServices(ctx *fiber.Ctx) error {
	mentorId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMentorServices(ctx.Context(), mentorId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching services", res))
}

func (c *bookingController) CreateService(ctx *fiber.Ctx) error {
	mentorId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertMentorServiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateService(ctx.Context(), mentorId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Serviço criado.", res))
}

func (c *bookingController) UpdateService(ctx *fiber.Ctx) error {
	mentorId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	serviceId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertMentorServiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateService(ctx.Context(), mentorId, serviceId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Serviço atualizado.", res))
}

func (c *bookingController) CreateBooking(ctx *fiber.Ctx) error {
	studentId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateBooking(ctx.Context(), studentId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Sessão agendada.", res))
}

func (c *bookingController) RescheduleBooking(ctx *fiber.Ctx) error {
	studentId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	bookingId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RescheduleBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.RescheduleBooking(ctx.Context(), studentId, bookingId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessão remarcada.", res))
}

func (c *bookingController) CancelBooking(ctx *fiber.Ctx) error {
	studentId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	bookingId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.CancelBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.service.CancelBooking(ctx.Context(), studentId, bookingId, &req)
	if err != nil {
		return toHTTPError(err)
	}
	msg := "Sessão cancelada."
	if res.Status == string(entity.BookingStatusNoShow) {
		msg = constant.MsgCancellationTooLate
	}
	return ctx.JSON(serverutils.SuccessResponse(msg, res))
}

func (c *bookingController) GetBookingDetail(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	bookingId, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetBookingDetail(ctx.Context(), userId, bookingId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching booking", res))
}

func (c *bookingController) ListMyBookings(ctx *fiber.Ctx) error {
	studentId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListStudentBookings(ctx.Context(), studentId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching bookings", res))
}

func (c *bookingController) ListMentorAgenda(ctx *fiber.Ctx) error {
	mentorId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMentorBookings(ctx.Context(), mentorId)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching agenda", res))
}
