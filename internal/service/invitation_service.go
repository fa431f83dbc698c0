// FILE: internal/service/invitation_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/pkg/mailer"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	adminevents "eua-na-pratica-be/pkg/admin/events"

	"github.com/google/uuid"
)

const invitationTTL = 14 * 24 * time.Hour

var ErrInvitationNotFound = errors.New(constant.MsgInvitationNotFound)

type IInvitationService interface {
	// ProcessInvitation redeems a token for the authenticated user and
	// enrolls them onto the invited plan.
	ProcessInvitation(ctx context.Context, userId uuid.UUID, req *dto.ProcessInvitationRequest) (*dto.ProcessInvitationResponse, error)
	// CreateLeadUser provisions a pending user, a trial subscription
	// and an invitation in one step. Admin only.
	CreateLeadUser(ctx context.Context, req *dto.CreateLeadUserRequest) (*dto.CreateLeadUserResponse, error)
}

type invitationService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminevents.Publisher
	mailer     mailer.IEmailService
	logger     logger.ILogger
	now        func() time.Time
}

func NewInvitationService(
	uowFactory unitofwork.RepositoryFactory,
	publisher adminevents.Publisher,
	mail mailer.IEmailService,
	log logger.ILogger,
) IInvitationService {
	return &invitationService{
		uowFactory: uowFactory,
		publisher:  publisher,
		mailer:     mail,
		logger:     log,
		now:        time.Now,
	}
}

func generateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *invitationService) ProcessInvitation(ctx context.Context, userId uuid.UUID, req *dto.ProcessInvitationRequest) (*dto.ProcessInvitationResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invitation, err := uow.InvitationRepository().FindOne(ctx, specification.ByToken{Token: req.Token})
	if err != nil {
		return nil, err
	}
	if invitation == nil || now.After(invitation.ExpiresAt) {
		return nil, ErrInvitationNotFound
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx,
		specification.Filter("slug", invitation.PlanSlug),
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	// An already-used invitation redeemed by the same user reports the
	// enrollment instead of failing, so a double-click stays harmless.
	if invitation.Used {
		if invitation.UsedBy != nil && *invitation.UsedBy == userId {
			return &dto.ProcessInvitationResponse{
				Success:         true,
				AlreadyEnrolled: true,
				PlanSlug:        invitation.PlanSlug,
				Message:         constant.MsgAlreadyEnrolled,
			}, nil
		}
		return nil, ErrInvitationNotFound
	}

	current, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.StatusIn{Statuses: activeStatuses},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if current != nil && current.PlanId == plan.Id {
		return &dto.ProcessInvitationResponse{
			Success:         true,
			AlreadyEnrolled: true,
			PlanSlug:        invitation.PlanSlug,
			Message:         constant.MsgAlreadyEnrolled,
		}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if current != nil {
		current.PlanId = plan.Id
		current.Status = entity.SubscriptionStatusActive
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, current); err != nil {
			return nil, err
		}
	} else {
		sub := &entity.UserSubscription{
			Id:            uuid.New(),
			UserId:        userId,
			PlanId:        plan.Id,
			Status:        entity.SubscriptionStatusActive,
			PaymentStatus: entity.PaymentStatusPaid,
			BillingCycle:  plan.BillingCycle,
		}
		if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
			return nil, err
		}
	}

	invitation.Used = true
	invitation.UsedBy = &userId
	if err := uow.InvitationRepository().Update(ctx, invitation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("INVITATION", "Invitation redeemed", map[string]interface{}{
		"invitation_id": invitation.Id.String(),
		"user_id":       userId.String(),
		"plan_slug":     invitation.PlanSlug,
	})

	return &dto.ProcessInvitationResponse{
		Success:  true,
		PlanSlug: invitation.PlanSlug,
		Message:  constant.MsgInvitationAccepted,
	}, nil
}

func (s *invitationService) CreateLeadUser(ctx context.Context, req *dto.CreateLeadUserRequest) (*dto.CreateLeadUserResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx,
		specification.Filter("slug", req.PlanSlug),
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user := &entity.User{
		Id:       uuid.New(),
		Email:    req.Email,
		FullName: req.FullName,
		Role:     entity.UserRoleStudent,
		Status:   entity.UserStatusPending,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	sub := &entity.UserSubscription{
		Id:            uuid.New(),
		UserId:        user.Id,
		PlanId:        plan.Id,
		Status:        entity.SubscriptionStatusTrial,
		PaymentStatus: entity.PaymentStatusPending,
		BillingCycle:  plan.BillingCycle,
	}
	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	invitation := &entity.Invitation{
		Id:        uuid.New(),
		Email:     req.Email,
		PlanSlug:  req.PlanSlug,
		Token:     token,
		ExpiresAt: now.Add(invitationTTL),
	}
	if err := uow.InvitationRepository().Create(ctx, invitation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.PublishLeadProvisioned(ctx, user.Id, sub.Id, user.Email, plan.Slug)

	go func() {
		if mailErr := s.mailer.SendInvitation(user.Email, user.FullName, plan.Name, token, invitation.ExpiresAt); mailErr != nil {
			s.logger.Warn("INVITATION", "Failed to send invitation email", map[string]interface{}{
				"email": user.Email,
				"error": mailErr.Error(),
			})
		}
	}()

	s.logger.Info("INVITATION", "Lead user provisioned", map[string]interface{}{
		"user_id":   user.Id.String(),
		"plan_slug": plan.Slug,
	})

	return &dto.CreateLeadUserResponse{
		UserId:         user.Id,
		SubscriptionId: sub.Id,
		InvitationId:   invitation.Id,
		ExpiresAt:      invitation.ExpiresAt,
	}, nil
}
