package user

import (
	"context"
	"fmt"
	"time"

	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	adminEvents "eua-na-pratica-be/pkg/admin/events"

	"github.com/google/uuid"
)

// Manager handles the admin user surface: listing, searching and
// status changes.
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork, req dto.AdminUserListRequest) ([]dto.AdminUserListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var users []*entity.User
	var err error
	if req.Search != "" {
		users, err = uow.UserRepository().SearchUsers(ctx, req.Search, limit, offset)
	} else {
		specs := []specification.Specification{
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: limit, Offset: offset},
		}
		if req.Role != "" {
			specs = append(specs, specification.Filter("role", req.Role))
		}
		if req.Status != "" {
			specs = append(specs, specification.Filter("status", req.Status))
		}
		users, err = uow.UserRepository().FindAll(ctx, specs...)
	}
	if err != nil {
		return nil, err
	}

	res := make([]dto.AdminUserListResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.AdminUserListResponse{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt,
		})
	}
	return res, nil
}

func (m *Manager) UpdateStatus(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, status string) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	user.Status = entity.UserStatus(status)
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "User status updated", map[string]interface{}{
		"user_id": userId,
		"status":  status,
	})
	return user, nil
}
