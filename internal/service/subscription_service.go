// FILE: internal/service/subscription_service.go
package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"time"

	"eua-na-pratica-be/internal/config"
	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/pkg/mailer"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	adminevents "eua-na-pratica-be/pkg/admin/events"
	"eua-na-pratica-be/pkg/events"
	"eua-na-pratica-be/pkg/reconcile"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	ErrSubscriptionNotFound = errors.New(constant.MsgSubscriptionNotFound)
	ErrSubscriptionActive   = errors.New(constant.MsgSubscriptionActive)
	ErrPlanNotFound         = errors.New(constant.MsgPlanNotFound)
	ErrInvalidSignature     = errors.New("invalid signature")
)

type ISubscriptionService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, req *dto.GatewayWebhookRequest) error
	CancelSubscription(ctx context.Context, userId uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.CancelSubscriptionResponse, error)
	GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminevents.Publisher
	dunning    IDunningService
	mailer     mailer.IEmailService
	gateway    config.GatewayConfig
	billing    config.BillingConfig
	logger     logger.ILogger
	now        func() time.Time
	// snapCreate defaults to the real gateway client; tests stub it.
	snapCreate func(req *snap.Request) (*snap.Response, error)
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher adminevents.Publisher,
	dunning IDunningService,
	mail mailer.IEmailService,
	cfg *config.Config,
	log logger.ILogger,
) ISubscriptionService {
	s := &subscriptionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		dunning:    dunning,
		mailer:     mail,
		gateway:    cfg.Gateway,
		billing:    cfg.Billing,
		logger:     log,
		now:        time.Now,
	}
	s.snapCreate = s.gatewayTransaction
	return s
}

// activeStatuses are the subscription states that still grant plan
// benefits; cancellation and status lookups resolve against these.
var activeStatuses = []string{
	string(entity.SubscriptionStatusTrial),
	string(entity.SubscriptionStatusActive),
	string(entity.SubscriptionStatusPastDue),
	string(entity.SubscriptionStatusGracePeriod),
}

func (s *subscriptionService) findCurrent(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.UserSubscription, error) {
	return uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.StatusIn{Statuses: activeStatuses},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func nextBilling(cycle entity.BillingCycle, from time.Time) time.Time {
	if cycle == entity.BillingCycleYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

func (s *subscriptionService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx,
		specification.ByID{ID: req.PlanId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// At most one non-cancelled subscription per user: a live row
	// blocks a new checkout, except an abandoned pending trial, which
	// gets superseded so the user can retry.
	existing, err := s.findCurrent(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status != entity.SubscriptionStatusTrial ||
			existing.PaymentStatus != entity.PaymentStatusPending {
			return nil, ErrSubscriptionActive
		}
		existing.Status = entity.SubscriptionStatusCancelled
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, existing); err != nil {
			return nil, err
		}
	}

	subId := uuid.New()
	orderId := subId.String()
	sub := &entity.UserSubscription{
		Id:             subId,
		UserId:         userId,
		PlanId:         plan.Id,
		Status:         entity.SubscriptionStatusTrial,
		PaymentStatus:  entity.PaymentStatusPending,
		BillingCycle:   plan.BillingCycle,
		GatewayOrderId: &orderId,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// Gateway call happens after the row is committed so a webhook
	// arriving early can already resolve the order id.
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, err := s.snapCreate(snapReq)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Checkout created", map[string]interface{}{
		"subscription_id": subId.String(),
		"user_id":         userId.String(),
		"plan_slug":       plan.Slug,
	})

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		SnapRedirectUrl: snapResp.RedirectURL,
		SnapToken:       snapResp.Token,
	}, nil
}

func (s *subscriptionService) gatewayTransaction(req *snap.Request) (*snap.Response, error) {
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.gateway.IsProduction {
		env = midtrans.Production
	}
	sClient.New(s.gateway.ServerKey, env)

	resp, midErr := sClient.CreateTransaction(req)
	if midErr != nil {
		return nil, fmt.Errorf("gateway error: %v", midErr.GetMessage())
	}
	return resp, nil
}

func (s *subscriptionService) verifySignature(req *dto.GatewayWebhookRequest) error {
	if s.gateway.ServerKey == "" {
		return errors.New("gateway server key not configured")
	}
	input := req.OrderId + req.StatusCode + req.GrossAmount + s.gateway.ServerKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	if req.SignatureKey != expected {
		return ErrInvalidSignature
	}
	return nil
}

// HandleWebhook applies a gateway transaction status to the
// subscription named by order_id. Success activates the subscription
// and opens the next billing window; failure drops it into the grace
// period so the dunning flow and the reconciliation sweep take over.
func (s *subscriptionService) HandleWebhook(ctx context.Context, req *dto.GatewayWebhookRequest) error {
	if err := s.verifySignature(req); err != nil {
		s.logger.Warn("SUBSCRIPTION", "Webhook signature rejected", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return err
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return errors.New("invalid order id format")
	}

	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	var eventType string
	switch req.TransactionStatus {
	case "capture", "settlement":
		if sub.Status == entity.SubscriptionStatusActive && sub.PaymentStatus == entity.PaymentStatusPaid {
			return nil // duplicate notification
		}
		next := nextBilling(sub.BillingCycle, now)
		sub.Status = entity.SubscriptionStatusActive
		sub.PaymentStatus = entity.PaymentStatusPaid
		sub.NextBillingDate = &next
		sub.GracePeriodEndsAt = nil
		sub.DunningAttempts = 0
		eventType = events.TypeSubscriptionActive
	case "deny", "cancel", "expire":
		if sub.PaymentStatus == entity.PaymentStatusFailed {
			return nil
		}
		graceEnd := now.Add(time.Duration(s.billing.GraceDays) * 24 * time.Hour)
		sub.Status = entity.SubscriptionStatusGracePeriod
		sub.PaymentStatus = entity.PaymentStatusFailed
		sub.GracePeriodEndsAt = &graceEnd
		sub.DunningAttempts++
		eventType = events.TypeSubscriptionPastDue
	case "pending":
		return nil
	default:
		s.logger.Warn("SUBSCRIPTION", "Unknown transaction status ignored", map[string]interface{}{
			"order_id":           req.OrderId,
			"transaction_status": req.TransactionStatus,
		})
		return nil
	}

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publisher.PublishSubscriptionEvent(ctx, eventType, sub.Id, sub.UserId, string(sub.Status))
	if eventType == events.TypeSubscriptionPastDue && s.dunning != nil && sub.GracePeriodEndsAt != nil {
		if dErr := s.dunning.PublishNotice(sub.Id, sub.UserId, *sub.GracePeriodEndsAt); dErr != nil {
			s.logger.Warn("SUBSCRIPTION", "Failed to enqueue dunning notice", map[string]interface{}{
				"subscription_id": sub.Id.String(),
				"error":           dErr.Error(),
			})
		}
	}
	s.logger.Info("SUBSCRIPTION", "Webhook applied", map[string]interface{}{
		"subscription_id":    sub.Id.String(),
		"transaction_status": req.TransactionStatus,
		"status":             string(sub.Status),
	})
	return nil
}

// CancelSubscription schedules a cancellation at the end of the paid
// period: the plan stays usable until then and the reconciliation
// sweep performs the downgrade once the expiry passes. A subscription
// with no paid period ahead of it is downgraded immediately.
func (s *subscriptionService) CancelSubscription(ctx context.Context, userId uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.CancelSubscriptionResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub, err := s.findCurrent(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}

	if sub.CancelAtPeriodEnd {
		// Repeated cancel requests are a no-op.
		return &dto.CancelSubscriptionResponse{
			Success:   true,
			ExpiresAt: sub.ExpiresAt,
			Message:   constant.MsgSubscriptionCancelled,
		}, nil
	}

	// No paid period to honor means the cancellation is immediate.
	immediate := sub.NextBillingDate == nil || !sub.NextBillingDate.After(now)
	expiresAt := now
	if !immediate {
		expiresAt = *sub.NextBillingDate
	}

	sub.CancelAtPeriodEnd = true
	sub.ExpiresAt = &expiresAt

	cancellationStatus := entity.CancellationStatusScheduled
	if immediate {
		// The sweep only watches active and past_due rows, so a
		// never-activated subscription is downgraded here rather than
		// left for a rule that will never match it.
		basicPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx,
			specification.Filter("slug", entity.PlanSlugBasic))
		if err != nil {
			return nil, err
		}
		if basicPlan == nil {
			return nil, ErrPlanNotFound
		}
		reconcile.Downgrade(sub, basicPlan.Id, now)
		cancellationStatus = entity.CancellationStatusImmediate
	}

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	cancellation := &entity.Cancellation{
		Id:             uuid.New(),
		SubscriptionId: sub.Id,
		UserId:         userId,
		Reason:         req.Reason,
		Feedback:       req.Feedback,
		Status:         cancellationStatus,
		EffectiveDate:  expiresAt,
	}
	if err := uow.CancellationRepository().Create(ctx, cancellation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.PublishSubscriptionEvent(ctx, events.TypeSubscriptionCancel, sub.Id, userId, string(sub.Status))

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err == nil && user != nil {
		go func() {
			if mailErr := s.mailer.SendCancellationConfirmation(user.Email, user.FullName, &expiresAt); mailErr != nil {
				s.logger.Warn("SUBSCRIPTION", "Failed to send cancellation email", map[string]interface{}{
					"user_id": userId.String(),
					"error":   mailErr.Error(),
				})
			}
		}()
	}

	s.logger.Info("SUBSCRIPTION", "Cancellation scheduled", map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"user_id":         userId.String(),
		"expires_at":      expiresAt.Format(time.RFC3339),
	})

	message := constant.MsgSubscriptionCancelled
	if immediate {
		message = constant.MsgSubscriptionEnded
	}

	return &dto.CancelSubscriptionResponse{
		Success:   true,
		ExpiresAt: &expiresAt,
		Message:   message,
	}, nil
}

func (s *subscriptionService) GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := s.findCurrent(ctx, uow, userId)
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

	resp := &dto.SubscriptionStatusResponse{
		Id:                sub.Id,
		Status:            string(sub.Status),
		PaymentStatus:     string(sub.PaymentStatus),
		BillingCycle:      string(sub.BillingCycle),
		NextBillingDate:   sub.NextBillingDate,
		GracePeriodEndsAt: sub.GracePeriodEndsAt,
		ExpiresAt:         sub.ExpiresAt,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if plan != nil {
		resp.PlanSlug = plan.Slug
		resp.PlanName = plan.Name
	}
	return resp, nil
}
