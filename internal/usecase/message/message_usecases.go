package message

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/logger"
)

type SendMessageUseCase struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	events   event.Publisher
}

func NewSendMessageUseCase(msgRepo repository.MessageRepository, userRepo repository.UserRepository, events event.Publisher) *SendMessageUseCase {
	return &SendMessageUseCase{msgRepo: msgRepo, userRepo: userRepo, events: events}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*entity.Message, error) {
	msg, err := entity.NewMessage(senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.FindByID(ctx, receiverID); err != nil {
		return nil, err
	}

	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	ev := event.MessageSent{MessageID: msg.ID, SenderID: msg.SenderID, ReceiverID: msg.ReceiverID}
	if err := uc.events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"message_id":  msg.ID,
			"receiver_id": msg.ReceiverID,
		}).Warn("не удалось создать уведомление о сообщении")
	}
	return msg, nil
}

type ConversationUseCase struct {
	msgRepo repository.MessageRepository
}

func NewConversationUseCase(msgRepo repository.MessageRepository) *ConversationUseCase {
	return &ConversationUseCase{msgRepo: msgRepo}
}

// Execute возвращает переписку двух пользователей по возрастанию id.
func (uc *ConversationUseCase) Execute(ctx context.Context, userID, otherID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	return uc.msgRepo.Conversation(ctx, userID, otherID, limit, offset)
}

type InboxUseCase struct {
	msgRepo repository.MessageRepository
}

func NewInboxUseCase(msgRepo repository.MessageRepository) *InboxUseCase {
	return &InboxUseCase{msgRepo: msgRepo}
}

func (uc *InboxUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	return uc.msgRepo.Inbox(ctx, userID, limit, offset)
}
