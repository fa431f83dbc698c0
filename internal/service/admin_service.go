// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"

	"eua-na-pratica-be/internal/config"
	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/admin/dashboard"
	adminuser "eua-na-pratica-be/pkg/admin/user"
	"eua-na-pratica-be/pkg/reconcile"

	"github.com/google/uuid"
)

type IAdminService interface {
	// Dashboard and logs
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetLogs(req dto.AdminLogQueryRequest) ([]dto.AdminLogEntry, error)

	// User management
	ListUsers(ctx context.Context, req dto.AdminUserListRequest) ([]dto.AdminUserListResponse, error)
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserStatusRequest) error

	// Plan catalog
	CreatePlan(ctx context.Context, req *dto.UpsertPlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, planId uuid.UUID, req *dto.UpsertPlanRequest) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, planId uuid.UUID) error

	// Booking policies
	UpsertPolicy(ctx context.Context, req *dto.UpsertBookingPolicyRequest) (*dto.BookingPolicyResponse, error)
	ListPolicies(ctx context.Context) ([]*dto.BookingPolicyResponse, error)
	DeletePolicy(ctx context.Context, policyId uuid.UUID) error

	// Billing operations
	ReconcileSubscriptions(ctx context.Context) (*dto.ReconcileSummary, error)
	SimulateGatewayCallback(ctx context.Context, req *dto.SimulateGatewayCallbackRequest) (*dto.SimulateGatewayCallbackResponse, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	entitlements  IEntitlementService
	subscriptions ISubscriptionService
	sweeper       *reconcile.Sweeper
	aggregator    *dashboard.Aggregator
	users         *adminuser.Manager
	gateway       config.GatewayConfig
	logger        logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	entitlements IEntitlementService,
	subscriptions ISubscriptionService,
	sweeper *reconcile.Sweeper,
	aggregator *dashboard.Aggregator,
	users *adminuser.Manager,
	cfg *config.Config,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		entitlements:  entitlements,
		subscriptions: subscriptions,
		sweeper:       sweeper,
		aggregator:    aggregator,
		users:         users,
		gateway:       cfg.Gateway,
		logger:        log,
	}
}

// --- Dashboard / logs ---

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) GetLogs(req dto.AdminLogQueryRequest) ([]dto.AdminLogEntry, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.aggregator.GetSystemLogs(req.Level, limit, 0)
}

// --- User management ---

func (s *adminService) ListUsers(ctx context.Context, req dto.AdminUserListRequest) ([]dto.AdminUserListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.users.List(ctx, uow, req)
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := s.users.UpdateStatus(ctx, uow, userId, req.Status)
	return err
}

// --- Plan catalog ---

func planToResponse(p *entity.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:           p.Id,
		Slug:         p.Slug,
		Name:         p.Name,
		Theme:        p.Theme,
		Price:        p.Price,
		BillingCycle: string(p.BillingCycle),
		MonthlyLimit: p.MonthlyLimit,
		Features:     p.FeatureOverrides,
		Discounts:    p.Discounts,
		SortOrder:    p.SortOrder,
	}
}

func applyPlanRequest(p *entity.Plan, req *dto.UpsertPlanRequest) {
	p.Slug = req.Slug
	p.Name = req.Name
	p.Theme = req.Theme
	p.Price = req.Price
	p.BillingCycle = entity.BillingCycle(req.BillingCycle)
	p.MonthlyLimit = req.MonthlyLimit
	p.FeatureOverrides = req.Features
	p.Discounts = req.Discounts
	p.SortOrder = req.SortOrder
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func (s *adminService) CreatePlan(ctx context.Context, req *dto.UpsertPlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindOnePlan(ctx,
		specification.Filter("slug", req.Slug),
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an active plan with slug %q already exists", req.Slug)
	}

	plan := &entity.Plan{Id: uuid.New(), IsActive: true}
	applyPlanRequest(plan, req)

	if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.entitlements.InvalidatePlanCache()
	s.logger.Info("ADMIN", "Plan created", map[string]interface{}{"slug": plan.Slug})
	return planToResponse(plan), nil
}

func (s *adminService) UpdatePlan(ctx context.Context, planId uuid.UUID, req *dto.UpsertPlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New(constant.MsgPlanNotFound)
	}

	applyPlanRequest(plan, req)
	if err := uow.SubscriptionRepository().UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.entitlements.InvalidatePlanCache()
	s.logger.Info("ADMIN", "Plan updated", map[string]interface{}{"slug": plan.Slug})
	return planToResponse(plan), nil
}

func (s *adminService) DeletePlan(ctx context.Context, planId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().DeletePlan(ctx, planId); err != nil {
		return err
	}
	s.entitlements.InvalidatePlanCache()
	return nil
}

// --- Booking policies ---

func policyToResponse(p *entity.BookingPolicy) *dto.BookingPolicyResponse {
	return &dto.BookingPolicyResponse{
		Id:                       p.Id,
		ServiceId:                p.ServiceId,
		CancellationWindowHours:  p.CancellationWindowHours,
		MaxReschedulesPerBooking: p.MaxReschedulesPerBooking,
		MaxConcurrentBookings:    p.MaxConcurrentBookings,
		MaxAdvanceDays:           p.MaxAdvanceDays,
	}
}

// UpsertPolicy writes the policy row for the request's scope: the row
// matching service_id (or the global row when nil) is updated in
// place, otherwise a new row is created.
func (s *adminService) UpsertPolicy(ctx context.Context, req *dto.UpsertBookingPolicyRequest) (*dto.BookingPolicyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var existing *entity.BookingPolicy
	var err error
	if req.ServiceId != nil {
		existing, err = uow.BookingRepository().FindPolicyForService(ctx, *req.ServiceId)
	} else {
		existing, err = uow.BookingRepository().FindGlobalPolicy(ctx)
	}
	if err != nil {
		return nil, err
	}

	if existing == nil {
		existing = &entity.BookingPolicy{Id: uuid.New(), ServiceId: req.ServiceId}
	}
	existing.CancellationWindowHours = req.CancellationWindowHours
	existing.MaxReschedulesPerBooking = req.MaxReschedulesPerBooking
	existing.MaxConcurrentBookings = req.MaxConcurrentBookings
	existing.MaxAdvanceDays = req.MaxAdvanceDays

	var writeErr error
	if existing.CreatedAt.IsZero() {
		writeErr = uow.BookingRepository().CreatePolicy(ctx, existing)
	} else {
		writeErr = uow.BookingRepository().UpdatePolicy(ctx, existing)
	}
	if writeErr != nil {
		return nil, writeErr
	}

	return policyToResponse(existing), nil
}

func (s *adminService) ListPolicies(ctx context.Context) ([]*dto.BookingPolicyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	policies, err := uow.BookingRepository().FindAllPolicies(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BookingPolicyResponse, 0, len(policies))
	for _, p := range policies {
		result = append(result, policyToResponse(p))
	}
	return result, nil
}

func (s *adminService) DeletePolicy(ctx context.Context, policyId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BookingRepository().DeletePolicy(ctx, policyId)
}

// --- Billing operations ---

func (s *adminService) ReconcileSubscriptions(ctx context.Context) (*dto.ReconcileSummary, error) {
	summary, err := s.sweeper.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileSummary{
		Success:            len(summary.Errors) == 0,
		Processed:          summary.Processed,
		OverdueToPastDue:   summary.OverdueToPastDue,
		GracePeriodExpired: summary.GracePeriodExpired,
		CancelledExpired:   summary.CancelledExpired,
		Errors:             summary.Errors,
	}, nil
}

// SimulateGatewayCallback builds a correctly signed gateway
// notification for a subscription and feeds it through the same
// webhook path the real gateway uses, so test environments exercise
// the full state machine.
func (s *adminService) SimulateGatewayCallback(ctx context.Context, req *dto.SimulateGatewayCallbackRequest) (*dto.SimulateGatewayCallbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: req.SubscriptionId})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}

	orderId := sub.Id.String()
	if sub.GatewayOrderId != nil {
		orderId = *sub.GatewayOrderId
	}

	statusCode := "200"
	grossAmount := "0.00"
	if plan != nil {
		grossAmount = fmt.Sprintf("%.2f", plan.Price)
	}

	signatureInput := orderId + statusCode + grossAmount + s.gateway.ServerKey
	webhook := &dto.GatewayWebhookRequest{
		TransactionStatus: req.TransactionStatus,
		OrderId:           orderId,
		StatusCode:        statusCode,
		GrossAmount:       grossAmount,
		SignatureKey:      fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput))),
	}

	if err := s.subscriptions.HandleWebhook(ctx, webhook); err != nil {
		return nil, err
	}

	updated, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: req.SubscriptionId})
	if err != nil {
		return nil, err
	}

	resp := &dto.SimulateGatewayCallbackResponse{
		OrderId:           orderId,
		TransactionStatus: req.TransactionStatus,
		Delivered:         true,
	}
	if updated != nil {
		resp.ResultingStatus = string(updated.Status)
	}
	s.logger.Info("ADMIN", "Gateway callback simulated", map[string]interface{}{
		"subscription_id":    req.SubscriptionId.String(),
		"transaction_status": req.TransactionStatus,
	})
	return resp, nil
}
