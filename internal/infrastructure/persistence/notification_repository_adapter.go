package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const notificationColumns = `id, user_id, message_id, proposal_id, trade_id, type, message_text,
	link_url, is_read, created_at`

type NotificationRepositoryAdapter struct {
	conn
}

func NewNotificationRepositoryAdapter(db *sqlx.DB) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{conn{db: db}}
}

// Insert опирается на частичные уникальные индексы trade_active и system_alert.
func (r *NotificationRepositoryAdapter) Insert(ctx context.Context, n *entity.Notification) (bool, error) {
	query := `INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING`
	res, err := r.ex(ctx).ExecContext(ctx, query,
		n.ID, n.UserID, n.MessageID, n.ProposalID, n.TradeID, string(n.Type), n.MessageText,
		n.LinkURL, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать уведомление")
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (r *NotificationRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var row notificationRow
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	if err := r.ex(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotificationNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомление")
	}
	return row.toEntity(), nil
}

func (r *NotificationRepositoryAdapter) List(ctx context.Context, userID uuid.UUID, filter repository.NotificationFilter) ([]*entity.Notification, error) {
	var rows []notificationRow
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR is_read = FALSE)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	err := r.ex(ctx).SelectContext(ctx, &rows, query, userID, filter.UnreadOnly, limitOrDefault(filter.Limit), filter.Offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомления")
	}
	result := make([]*entity.Notification, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *NotificationRepositoryAdapter) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	if err := r.ex(ctx).GetContext(ctx, &count, query, userID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать уведомления")
	}
	return count, nil
}

func (r *NotificationRepositoryAdapter) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.ex(ctx).ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить уведомление")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryAdapter) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	res, err := r.ex(ctx).ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить уведомления")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type notificationRow struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	MessageID   *int64     `db:"message_id"`
	ProposalID  *uuid.UUID `db:"proposal_id"`
	TradeID     *uuid.UUID `db:"trade_id"`
	Type        string     `db:"type"`
	MessageText string     `db:"message_text"`
	LinkURL     *string    `db:"link_url"`
	IsRead      bool       `db:"is_read"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (n *notificationRow) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:          n.ID,
		UserID:      n.UserID,
		MessageID:   n.MessageID,
		ProposalID:  n.ProposalID,
		TradeID:     n.TradeID,
		Type:        valueobject.NotificationType(n.Type),
		MessageText: n.MessageText,
		LinkURL:     n.LinkURL,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
