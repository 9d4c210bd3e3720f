package notification

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

// DefaultAnnouncement - текст системного объявления по умолчанию.
const DefaultAnnouncement = "Welcome to Swapo! Start trading skills with other users today."

const messagesLink = "/app/dashboard/messages"

func proposalLink(id uuid.UUID) string {
	return fmt.Sprintf("/app/dashboard/proposal/%s", id)
}

func tradeLink(id uuid.UUID) string {
	return fmt.Sprintf("/app/dashboard/trade/%s", id)
}

func newMessageText(sender *entity.User) string {
	return fmt.Sprintf("New message from %s", sender.Username)
}

func proposalCreatedText(proposer *entity.User, offered, desired *entity.Skill) string {
	return fmt.Sprintf("%s proposed a trade: %s for %s", proposer.DisplayName(), offered.Name, desired.Name)
}

// Имя принявшего пишется с заглавных букв каждого слова.
func proposalAcceptedText(recipient *entity.User) string {
	return fmt.Sprintf("%s accepted your trade proposal!", cases.Title(language.Und).String(recipient.DisplayName()))
}

func tradeStartedText(other *entity.User, skill1, skill2 *entity.Skill) string {
	return fmt.Sprintf("Trade started with %s: %s ↔ %s", other.DisplayName(), skill1.Name, skill2.Name)
}

func tradeStatusText(other *entity.User, status valueobject.TradeStatus, skill1, skill2 *entity.Skill) string {
	return fmt.Sprintf("Trade with %s is now %s: %s ↔ %s", other.DisplayName(), status, skill1.Name, skill2.Name)
}

func tradeCompletedText(other *entity.User, skill1, skill2 *entity.Skill) string {
	return fmt.Sprintf("Trade with %s is completed: %s ↔ %s", other.DisplayName(), skill1.Name, skill2.Name)
}
