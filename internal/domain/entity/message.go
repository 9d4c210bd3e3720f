package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const MaxMessageLength = 5000

// Message - сообщение между двумя пользователями. ID выдаёт база (BIGSERIAL).
type Message struct {
	ID         int64
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    string
	CreatedAt  time.Time
}

func NewMessage(senderID, receiverID uuid.UUID, content string) (*Message, error) {
	if senderID == receiverID {
		return nil, apperror.ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("message_empty", "сообщение не может быть пустым")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, apperror.Validation("message_too_long", "сообщение слишком длинное")
	}
	return &Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}, nil
}
