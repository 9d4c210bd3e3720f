package valueobject

import "github.com/swapo-org/swapo-backend/internal/pkg/apperror"

type NotificationType string

const (
	NotificationNewMessage     NotificationType = "new_message"
	NotificationTradeProposal  NotificationType = "trade_proposal"
	NotificationTradeAccepted  NotificationType = "trade_accepted"
	NotificationTradeActive    NotificationType = "trade_active"
	NotificationTradeCompleted NotificationType = "trade_completed"
	NotificationSystemAlert    NotificationType = "system_alert"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewMessage, NotificationTradeProposal, NotificationTradeAccepted,
		NotificationTradeActive, NotificationTradeCompleted, NotificationSystemAlert:
		return true
	}
	return false
}

func NewNotificationType(value string) (NotificationType, error) {
	t := NotificationType(value)
	if !t.IsValid() {
		return "", apperror.Validation("invalid_notification_type", "некорректный тип уведомления")
	}
	return t, nil
}

// SkillType - навык, который пользователь предлагает или хочет получить.
type SkillType string

const (
	SkillTypeOffering SkillType = "offering"
	SkillTypeDesiring SkillType = "desiring"
)

func (t SkillType) IsValid() bool {
	return t == SkillTypeOffering || t == SkillTypeDesiring
}

func NewSkillType(value string) (SkillType, error) {
	t := SkillType(value)
	if !t.IsValid() {
		return "", apperror.Validation("invalid_skill_type", "тип навыка должен быть offering или desiring")
	}
	return t, nil
}
