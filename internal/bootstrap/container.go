// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"
	"time"

	"eua-na-pratica-be/internal/config"
	"eua-na-pratica-be/internal/controller"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/handler"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/pkg/mailer"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/internal/service"
	"eua-na-pratica-be/internal/websocket"
	"eua-na-pratica-be/pkg/admin/dashboard"
	adminEvents "eua-na-pratica-be/pkg/admin/events"
	"eua-na-pratica-be/pkg/admin/user"
	"eua-na-pratica-be/pkg/events"
	pkgNats "eua-na-pratica-be/pkg/nats"
	"eua-na-pratica-be/pkg/reconcile"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	BookingController      controller.IBookingController
	SubscriptionController controller.ISubscriptionController
	InvitationController   controller.IInvitationController
	ReportController       controller.IReportController
	AdminController        controller.IAdminController

	// Background services (exposed for main.go to run)
	DunningService service.IDunningService
	Sweeper        *reconcile.Sweeper

	// WebSockets
	WebSocketHub  *websocket.Hub
	EventsHandler *handler.EventsHandler
}

// sweepSink fans reconciliation events out to NATS and, for payment
// failures, onto the dunning topic.
type sweepSink struct {
	nats    *pkgNats.Publisher
	dunning service.IDunningService
}

func (s *sweepSink) Publish(ctx context.Context, event events.Event) error {
	if event.EventType() == events.TypeSubscriptionPastDue && s.dunning != nil {
		if msg, ok := dunningPayload(event); ok {
			if err := s.dunning.PublishNotice(msg.SubscriptionId, msg.UserId, msg.GraceEndsAt); err != nil {
				return err
			}
		}
	}
	if s.nats == nil {
		return nil
	}
	return s.nats.Publish(ctx, event)
}

// dunningPayload extracts the dunning notice fields from a sweep
// event. Events without a grace window produce no notice.
func dunningPayload(event events.Event) (dto.DunningNoticeMessage, bool) {
	data := event.Payload()
	subId, err1 := uuid.Parse(asString(data["subscription_id"]))
	userId, err2 := uuid.Parse(asString(data["user_id"]))
	graceEndsAt, err3 := time.Parse(time.RFC3339, asString(data["grace_ends_at"]))
	if err1 != nil || err2 != nil || err3 != nil {
		return dto.DunningNoticeMessage{}, false
	}
	return dto.DunningNoticeMessage{
		SubscriptionId: subId,
		UserId:         userId,
		GraceEndsAt:    graceEndsAt,
	}, true
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 2.5 Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub, backed by redis so events cross instances.
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Bridge NATS events into connected sockets.
	if natsSub != nil {
		if err := natsSub.Subscribe("events.>", "ws-bridge", func(_ context.Context, evt events.Event) error {
			wsHub.Broadcast(evt)
			return nil
		}); err != nil {
			log.Printf("[WARN] Failed to subscribe websocket bridge: %v", err)
		}
	}

	// 3. Services
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)

	dunningService := service.NewDunningService(pubSub, uowFactory, emailService, sysLogger)

	entitlementService := service.NewEntitlementService(uowFactory, sysLogger)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	userService := service.NewUserService(uowFactory)
	bookingService := service.NewBookingService(uowFactory, entitlementService, adminEventPublisher, sysLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, adminEventPublisher, dunningService, emailService, cfg, sysLogger)
	invitationService := service.NewInvitationService(uowFactory, adminEventPublisher, emailService, sysLogger)
	reportService := service.NewReportService(uowFactory, entitlementService, sysLogger)

	// Reconciliation sweep
	sink := &sweepSink{nats: natsPub, dunning: dunningService}
	sweeper := reconcile.NewSweeper(uowFactory, sink, sysLogger, cfg.Billing.GraceDays)

	// Admin domain components
	userManager := user.NewManager(sysLogger, adminEventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		entitlementService,
		subscriptionService,
		sweeper,
		dashboardAggregator,
		userManager,
		cfg,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		UserController:         controller.NewUserController(userService, entitlementService),
		BookingController:      controller.NewBookingController(bookingService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, entitlementService),
		InvitationController:   controller.NewInvitationController(invitationService),
		ReportController:       controller.NewReportController(reportService),
		AdminController:        controller.NewAdminController(adminService, invitationService),

		DunningService: dunningService,
		Sweeper:        sweeper,
		WebSocketHub:   wsHub,
		EventsHandler:  handler.NewEventsHandler(wsHub, wsLogger),
	}
}
