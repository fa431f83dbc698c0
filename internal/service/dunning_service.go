// FILE: internal/service/dunning_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/pkg/mailer"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// DunningTopic carries payment-failure notices from the webhook and
// the reconciliation sweep to the mail consumer.
const DunningTopic = "subscription_dunning"

type IDunningService interface {
	// PublishNotice enqueues a dunning email for a past-due subscription.
	PublishNotice(subscriptionId, userId uuid.UUID, graceEndsAt time.Time) error
	// Consume drains the dunning topic until ctx is cancelled.
	Consume(ctx context.Context) error
}

type dunningService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewDunningService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	mail mailer.IEmailService,
	log logger.ILogger,
) IDunningService {
	return &dunningService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		mailer:     mail,
		logger:     log,
	}
}

func (s *dunningService) PublishNotice(subscriptionId, userId uuid.UUID, graceEndsAt time.Time) error {
	payload, err := json.Marshal(dto.DunningNoticeMessage{
		SubscriptionId: subscriptionId,
		UserId:         userId,
		GraceEndsAt:    graceEndsAt,
	})
	if err != nil {
		return err
	}
	return s.pubSub.Publish(DunningTopic, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *dunningService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, DunningTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *dunningService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DunningNoticeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("DUNNING", "Failed to unmarshal dunning message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages never become processable
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		s.logger.Error("DUNNING", "Failed to load user for dunning notice", map[string]interface{}{
			"user_id": payload.UserId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	if user == nil {
		msg.Ack() // user removed, nothing to notify
		return
	}

	if err := s.mailer.SendDunningNotice(user.Email, user.FullName, payload.GraceEndsAt); err != nil {
		s.logger.Error("DUNNING", "Failed to send dunning notice", map[string]interface{}{
			"user_id": payload.UserId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	s.logger.Info("DUNNING", "Dunning notice sent", map[string]interface{}{
		"subscription_id": payload.SubscriptionId.String(),
		"user_id":         payload.UserId.String(),
	})
	msg.Ack()
}
