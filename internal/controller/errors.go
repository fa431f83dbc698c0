// FILE: internal/controller/errors.go
package controller

import (
	"errors"

	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// toHTTPError maps the service layer's sentinel errors onto HTTP
// status codes. Unknown errors pass through and become a generic 500
// at the outer error handler.
func toHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrReportNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSubscriptionActive):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMonthlyLimitReached):
		return fiber.NewError(fiber.StatusUnprocessableEntity, constant.MsgLimitReached)
	case errors.Is(err, service.ErrConcurrentLimit),
		errors.Is(err, service.ErrBookingTooFar),
		errors.Is(err, service.ErrRescheduleNotAllowed):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return err
	}
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok || userIdStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return userId, nil
}
