package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type ListNotificationsUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewListNotificationsUseCase(notificationRepo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	return uc.notificationRepo.List(ctx, userID, filter)
}

type UnreadCountUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewUnreadCountUseCase(notificationRepo repository.NotificationRepository) *UnreadCountUseCase {
	return &UnreadCountUseCase{notificationRepo: notificationRepo}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, userID uuid.UUID) (int, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

type MarkAllReadUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewMarkAllReadUseCase(notificationRepo repository.NotificationRepository) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{notificationRepo: notificationRepo}
}

// Execute возвращает число уведомлений, которые были непрочитаны.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uuid.UUID) (int, error) {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

type MarkReadUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewMarkReadUseCase(notificationRepo repository.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{notificationRepo: notificationRepo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error) {
	n, err := uc.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !n.IsOwnedBy(userID) {
		return nil, apperror.ErrForbidden
	}
	if n.IsRead {
		return n, nil
	}

	if err := uc.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

// AnnounceUseCase рассылает системное объявление всем пользователям.
// Повторная рассылка того же текста не создаёт дубликатов.
type AnnounceUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewAnnounceUseCase(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *AnnounceUseCase {
	return &AnnounceUseCase{notificationRepo: notificationRepo, userRepo: userRepo}
}

// Execute возвращает число созданных уведомлений.
func (uc *AnnounceUseCase) Execute(ctx context.Context, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultAnnouncement
	}

	ids, err := uc.userRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, id := range ids {
		ok, err := uc.notificationRepo.Insert(ctx, entity.NewNotification(id, valueobject.NotificationSystemAlert, text))
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"users":   len(ids),
		"created": created,
	}).Info("системное объявление разослано")
	return created, nil
}
