package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"eua-na-pratica-be/internal/config"
	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/contract"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/events"
	"eua-na-pratica-be/pkg/reconcile"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBilling(t *testing.T) {
	from := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	monthly := nextBilling(entity.BillingCycleMonthly, from)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), monthly, "AddDate normalizes past the short month")

	yearly := nextBilling(entity.BillingCycleYearly, from)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), yearly)
}

func TestVerifySignature(t *testing.T) {
	svc := &subscriptionService{
		gateway: config.GatewayConfig{ServerKey: "server-key"},
	}

	req := &dto.GatewayWebhookRequest{
		OrderId:     "7f3c6f2a-0000-0000-0000-000000000001",
		StatusCode:  "200",
		GrossAmount: "47.00",
	}
	req.SignatureKey = signWebhook(req, "server-key")

	assert.NoError(t, svc.verifySignature(req))

	req.SignatureKey = "tampered"
	assert.ErrorIs(t, svc.verifySignature(req), ErrInvalidSignature)

	unconfigured := &subscriptionService{}
	assert.Error(t, unconfigured.verifySignature(req))
}

// --- In-memory fakes for the service-level state machine tests ---

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

type stubPublisher struct {
	subscriptionEvents []string
}

func (p *stubPublisher) PublishUserRegistered(context.Context, uuid.UUID, string, string, string) {}
func (p *stubPublisher) PublishLeadProvisioned(context.Context, uuid.UUID, uuid.UUID, string, string) {
}
func (p *stubPublisher) PublishSubscriptionEvent(_ context.Context, eventType string, _, _ uuid.UUID, _ string) {
	p.subscriptionEvents = append(p.subscriptionEvents, eventType)
}
func (p *stubPublisher) PublishBookingEvent(context.Context, string, uuid.UUID, uuid.UUID, uuid.UUID, string) {
}

type stubDunning struct {
	notices int
}

func (d *stubDunning) PublishNotice(uuid.UUID, uuid.UUID, time.Time) error {
	d.notices++
	return nil
}
func (d *stubDunning) Consume(context.Context) error { return nil }

type nopMailer struct{}

func (nopMailer) SendVerificationCode(string, string) error                      { return nil }
func (nopMailer) SendInvitation(string, string, string, string, time.Time) error { return nil }
func (nopMailer) SendDunningNotice(string, string, time.Time) error              { return nil }
func (nopMailer) SendCancellationConfirmation(string, string, *time.Time) error  { return nil }

type fakeSubscriptionRepo struct {
	contract.SubscriptionRepository
	plans []*entity.Plan
	subs  []*entity.UserSubscription
}

func matchPlan(p *entity.Plan, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.FilterBy:
			if v.Field == "slug" && p.Slug != v.Value {
				return false
			}
		case specification.ActiveOnly:
			if !p.IsActive {
				return false
			}
		}
	}
	return true
}

func matchSub(s *entity.UserSubscription, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		case specification.StatusIn:
			found := false
			for _, status := range v.Statuses {
				if status == string(s.Status) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindOnePlan(_ context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	for _, p := range r.plans {
		if matchPlan(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(_ context.Context, sub *entity.UserSubscription) error {
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(_ context.Context, sub *entity.UserSubscription) error {
	for i, existing := range r.subs {
		if existing.Id == sub.Id {
			r.subs[i] = sub
			return nil
		}
	}
	return nil
}

// FindOneSubscription keeps the newest match, mirroring the
// created_at DESC ordering the real repository applies.
func (r *fakeSubscriptionRepo) FindOneSubscription(_ context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	var out *entity.UserSubscription
	for _, s := range r.subs {
		if !matchSub(s, specs) {
			continue
		}
		if out == nil || s.CreatedAt.After(out.CreatedAt) {
			out = s
		}
	}
	return out, nil
}

type fakeCancellationRepo struct {
	contract.CancellationRepository
	rows []*entity.Cancellation
}

func (r *fakeCancellationRepo) Create(_ context.Context, c *entity.Cancellation) error {
	r.rows = append(r.rows, c)
	return nil
}

type fakeUserRepo struct {
	contract.UserRepository
}

func (fakeUserRepo) FindOne(context.Context, ...specification.Specification) (*entity.User, error) {
	return nil, nil
}

type fakeUow struct {
	subs    *fakeSubscriptionRepo
	cancs   *fakeCancellationRepo
	commits int
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error {
	u.commits++
	return nil
}
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return fakeUserRepo{} }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subs
}
func (u *fakeUow) BookingRepository() contract.BookingRepository       { return nil }
func (u *fakeUow) UsageRepository() contract.UsageRepository           { return nil }
func (u *fakeUow) InvitationRepository() contract.InvitationRepository { return nil }
func (u *fakeUow) ReportRepository() contract.ReportRepository         { return nil }
func (u *fakeUow) CancellationRepository() contract.CancellationRepository {
	return u.cancs
}

type fakeFactory struct {
	uow *fakeUow
}

func (f fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

var subscriptionNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type subscriptionFixture struct {
	svc       *subscriptionService
	uow       *fakeUow
	publisher *stubPublisher
	dunning   *stubDunning
	basicPlan *entity.Plan
	proPlan   *entity.Plan
}

func newSubscriptionFixture() *subscriptionFixture {
	basicPlan := &entity.Plan{
		Id:           uuid.New(),
		Slug:         entity.PlanSlugBasic,
		Name:         "Basic",
		IsActive:     true,
		BillingCycle: entity.BillingCycleMonthly,
	}
	proPlan := &entity.Plan{
		Id:           uuid.New(),
		Slug:         entity.PlanSlugPro,
		Name:         "Pro",
		Price:        47,
		IsActive:     true,
		BillingCycle: entity.BillingCycleMonthly,
	}

	uow := &fakeUow{
		subs:  &fakeSubscriptionRepo{plans: []*entity.Plan{basicPlan, proPlan}},
		cancs: &fakeCancellationRepo{},
	}
	publisher := &stubPublisher{}
	dunning := &stubDunning{}

	svc := &subscriptionService{
		uowFactory: fakeFactory{uow: uow},
		publisher:  publisher,
		dunning:    dunning,
		mailer:     nopMailer{},
		gateway:    config.GatewayConfig{ServerKey: "server-key"},
		billing:    config.BillingConfig{GraceDays: 7},
		logger:     nopLogger{},
		now:        func() time.Time { return subscriptionNow },
	}
	svc.snapCreate = func(*snap.Request) (*snap.Response, error) {
		return &snap.Response{Token: "snap-token", RedirectURL: "https://gateway.test/redirect"}, nil
	}

	return &subscriptionFixture{
		svc:       svc,
		uow:       uow,
		publisher: publisher,
		dunning:   dunning,
		basicPlan: basicPlan,
		proPlan:   proPlan,
	}
}

func signWebhook(req *dto.GatewayWebhookRequest, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512(
		[]byte(req.OrderId+req.StatusCode+req.GrossAmount+serverKey),
	))
}

func TestCancelSubscriptionSchedulesPeriodEnd(t *testing.T) {
	fix := newSubscriptionFixture()
	userId := uuid.New()
	next := subscriptionNow.AddDate(0, 0, 20)
	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          fix.proPlan.Id,
		Status:          entity.SubscriptionStatusActive,
		PaymentStatus:   entity.PaymentStatusPaid,
		BillingCycle:    entity.BillingCycleMonthly,
		NextBillingDate: &next,
		CreatedAt:       subscriptionNow.AddDate(0, -1, 0),
	}
	fix.uow.subs.subs = []*entity.UserSubscription{sub}

	resp, err := fix.svc.CancelSubscription(context.Background(), userId, &dto.CancelSubscriptionRequest{Reason: "too expensive"})
	require.NoError(t, err)

	assert.Equal(t, constant.MsgSubscriptionCancelled, resp.Message)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, next, *resp.ExpiresAt)

	// The plan stays usable until the paid period ends.
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.True(t, sub.CancelAtPeriodEnd)
	require.NotNil(t, sub.ExpiresAt)
	assert.Equal(t, next, *sub.ExpiresAt)

	require.Len(t, fix.uow.cancs.rows, 1)
	assert.Equal(t, entity.CancellationStatusScheduled, fix.uow.cancs.rows[0].Status)

	// The sweep picks the row up only once expires_at has passed.
	assert.False(t, reconcile.ApplyScheduledCancellation(sub, fix.basicPlan.Id, next.Add(-time.Hour)))
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.True(t, reconcile.ApplyScheduledCancellation(sub, fix.basicPlan.Id, next.Add(time.Hour)))
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
	assert.Equal(t, fix.basicPlan.Id, sub.PlanId)
}

func TestCancelSubscriptionNeverActivatedDowngradesImmediately(t *testing.T) {
	fix := newSubscriptionFixture()
	userId := uuid.New()
	sub := &entity.UserSubscription{
		Id:            uuid.New(),
		UserId:        userId,
		PlanId:        fix.proPlan.Id,
		Status:        entity.SubscriptionStatusTrial,
		PaymentStatus: entity.PaymentStatusPending,
		BillingCycle:  entity.BillingCycleMonthly,
		CreatedAt:     subscriptionNow.Add(-time.Hour),
	}
	fix.uow.subs.subs = []*entity.UserSubscription{sub}

	resp, err := fix.svc.CancelSubscription(context.Background(), userId, &dto.CancelSubscriptionRequest{})
	require.NoError(t, err)
	assert.Equal(t, constant.MsgSubscriptionEnded, resp.Message)

	// No paid period to honor: the downgrade happens in the same
	// transaction instead of waiting for a sweep rule that only
	// watches active and past_due rows.
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
	assert.Equal(t, fix.basicPlan.Id, sub.PlanId)
	assert.Nil(t, sub.NextBillingDate)
	assert.Nil(t, sub.GracePeriodEndsAt)
	assert.Nil(t, sub.ExpiresAt)
	assert.False(t, sub.CancelAtPeriodEnd)
	assert.Nil(t, sub.GatewayOrderId)

	require.Len(t, fix.uow.cancs.rows, 1)
	assert.Equal(t, entity.CancellationStatusImmediate, fix.uow.cancs.rows[0].Status)
	assert.Equal(t, subscriptionNow, fix.uow.cancs.rows[0].EffectiveDate)

	// The row no longer resolves as a live subscription, so the user
	// falls back to the basic entitlements.
	current, err := fix.svc.findCurrent(context.Background(), fix.uow, userId)
	require.NoError(t, err)
	assert.Nil(t, current)

	// And no later sweep touches it again.
	later := subscriptionNow.AddDate(0, 0, 30)
	assert.False(t, reconcile.ApplyOverdue(sub, 7*24*time.Hour, later))
	assert.False(t, reconcile.ApplyGraceExpiry(sub, fix.basicPlan.Id, later))
	assert.False(t, reconcile.ApplyScheduledCancellation(sub, fix.basicPlan.Id, later))
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
}

func TestCancelSubscriptionRepeatedIsNoOp(t *testing.T) {
	fix := newSubscriptionFixture()
	userId := uuid.New()
	next := subscriptionNow.AddDate(0, 0, 20)
	sub := &entity.UserSubscription{
		Id:              uuid.New(),
		UserId:          userId,
		PlanId:          fix.proPlan.Id,
		Status:          entity.SubscriptionStatusActive,
		PaymentStatus:   entity.PaymentStatusPaid,
		NextBillingDate: &next,
	}
	fix.uow.subs.subs = []*entity.UserSubscription{sub}

	_, err := fix.svc.CancelSubscription(context.Background(), userId, &dto.CancelSubscriptionRequest{})
	require.NoError(t, err)

	resp, err := fix.svc.CancelSubscription(context.Background(), userId, &dto.CancelSubscriptionRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, constant.MsgSubscriptionCancelled, resp.Message)
	assert.Len(t, fix.uow.cancs.rows, 1, "a repeated cancel records nothing new")
}

func TestCancelSubscriptionWithoutSubscription(t *testing.T) {
	fix := newSubscriptionFixture()

	_, err := fix.svc.CancelSubscription(context.Background(), uuid.New(), &dto.CancelSubscriptionRequest{})
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestCheckoutRejectsLiveSubscription(t *testing.T) {
	fix := newSubscriptionFixture()
	userId := uuid.New()
	fix.uow.subs.subs = []*entity.UserSubscription{{
		Id:            uuid.New(),
		UserId:        userId,
		PlanId:        fix.proPlan.Id,
		Status:        entity.SubscriptionStatusActive,
		PaymentStatus: entity.PaymentStatusPaid,
	}}

	_, err := fix.svc.Checkout(context.Background(), userId, &dto.CheckoutRequest{
		PlanId:    fix.proPlan.Id,
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
	})
	assert.ErrorIs(t, err, ErrSubscriptionActive)
	assert.Len(t, fix.uow.subs.subs, 1, "no second row is created")
}

func TestCheckoutSupersedesAbandonedCheckout(t *testing.T) {
	fix := newSubscriptionFixture()
	userId := uuid.New()
	stale := &entity.UserSubscription{
		Id:            uuid.New(),
		UserId:        userId,
		PlanId:        fix.proPlan.Id,
		Status:        entity.SubscriptionStatusTrial,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     subscriptionNow.Add(-48 * time.Hour),
	}
	fix.uow.subs.subs = []*entity.UserSubscription{stale}

	resp, err := fix.svc.Checkout(context.Background(), userId, &dto.CheckoutRequest{
		PlanId:    fix.proPlan.Id,
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "snap-token", resp.SnapToken)

	assert.Equal(t, entity.SubscriptionStatusCancelled, stale.Status)

	live := 0
	for _, s := range fix.uow.subs.subs {
		if s.Status != entity.SubscriptionStatusCancelled {
			live++
			require.NotNil(t, s.GatewayOrderId)
			assert.Equal(t, s.Id.String(), *s.GatewayOrderId)
		}
	}
	assert.Equal(t, 1, live, "at most one non-cancelled row per user")
}

func TestHandleWebhookStateMachine(t *testing.T) {
	newRequest := func(sub *entity.UserSubscription, status string) *dto.GatewayWebhookRequest {
		req := &dto.GatewayWebhookRequest{
			TransactionStatus: status,
			OrderId:           sub.Id.String(),
			StatusCode:        "200",
			GrossAmount:       "47.00",
		}
		req.SignatureKey = signWebhook(req, "server-key")
		return req
	}
	newPendingSub := func(fix *subscriptionFixture) *entity.UserSubscription {
		sub := &entity.UserSubscription{
			Id:            uuid.New(),
			UserId:        uuid.New(),
			PlanId:        fix.proPlan.Id,
			Status:        entity.SubscriptionStatusTrial,
			PaymentStatus: entity.PaymentStatusPending,
			BillingCycle:  entity.BillingCycleMonthly,
		}
		fix.uow.subs.subs = []*entity.UserSubscription{sub}
		return sub
	}

	t.Run("settlement activates and opens the billing window", func(t *testing.T) {
		fix := newSubscriptionFixture()
		sub := newPendingSub(fix)

		require.NoError(t, fix.svc.HandleWebhook(context.Background(), newRequest(sub, "settlement")))

		assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
		assert.Equal(t, entity.PaymentStatusPaid, sub.PaymentStatus)
		require.NotNil(t, sub.NextBillingDate)
		assert.Equal(t, nextBilling(entity.BillingCycleMonthly, subscriptionNow), *sub.NextBillingDate)
		assert.Nil(t, sub.GracePeriodEndsAt)
		assert.Equal(t, []string{events.TypeSubscriptionActive}, fix.publisher.subscriptionEvents)

		// A duplicate notification is acknowledged without side effects.
		require.NoError(t, fix.svc.HandleWebhook(context.Background(), newRequest(sub, "settlement")))
		assert.Len(t, fix.publisher.subscriptionEvents, 1)
	})

	t.Run("deny opens the grace period and starts dunning", func(t *testing.T) {
		fix := newSubscriptionFixture()
		sub := newPendingSub(fix)

		require.NoError(t, fix.svc.HandleWebhook(context.Background(), newRequest(sub, "deny")))

		assert.Equal(t, entity.SubscriptionStatusGracePeriod, sub.Status)
		assert.Equal(t, entity.PaymentStatusFailed, sub.PaymentStatus)
		require.NotNil(t, sub.GracePeriodEndsAt)
		assert.Equal(t, subscriptionNow.Add(7*24*time.Hour), *sub.GracePeriodEndsAt)
		assert.Equal(t, 1, sub.DunningAttempts)
		assert.Equal(t, 1, fix.dunning.notices)
		assert.Equal(t, []string{events.TypeSubscriptionPastDue}, fix.publisher.subscriptionEvents)
	})

	t.Run("pending is ignored", func(t *testing.T) {
		fix := newSubscriptionFixture()
		sub := newPendingSub(fix)

		require.NoError(t, fix.svc.HandleWebhook(context.Background(), newRequest(sub, "pending")))
		assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status)
		assert.Empty(t, fix.publisher.subscriptionEvents)
	})

	t.Run("bad signature is rejected before any lookup", func(t *testing.T) {
		fix := newSubscriptionFixture()
		sub := newPendingSub(fix)

		req := newRequest(sub, "settlement")
		req.SignatureKey = "tampered"
		assert.ErrorIs(t, fix.svc.HandleWebhook(context.Background(), req), ErrInvalidSignature)
		assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status)
	})

	t.Run("unknown order id", func(t *testing.T) {
		fix := newSubscriptionFixture()
		orphan := &entity.UserSubscription{Id: uuid.New()}

		assert.ErrorIs(t, fix.svc.HandleWebhook(context.Background(), newRequest(orphan, "settlement")), ErrSubscriptionNotFound)
	})
}
