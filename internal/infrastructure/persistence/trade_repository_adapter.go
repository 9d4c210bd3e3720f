package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const tradeColumns = `id, proposal_id, user1_id, user2_id, skill1_id, skill2_id, terms_agreed,
	status, start_date, actual_completion_date`

type TradeRepositoryAdapter struct {
	conn
}

func NewTradeRepositoryAdapter(db *sqlx.DB) *TradeRepositoryAdapter {
	return &TradeRepositoryAdapter{conn{db: db}}
}

func (r *TradeRepositoryAdapter) Create(ctx context.Context, t *entity.Trade) error {
	query := `INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.ex(ctx).ExecContext(ctx, query,
		t.ID, t.ProposalID, t.User1ID, t.User2ID, t.Skill1ID, t.Skill2ID, t.TermsAgreed,
		string(t.Status), t.StartDate, t.ActualCompletionDate,
	)
	if err != nil {
		if isUniqueViolation(err, "trades_proposal_id_key") {
			return apperror.ErrProposalAlreadyAccepted
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать обмен")
	}
	return nil
}

func (r *TradeRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trade, error) {
	return r.findOne(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = $1`, id)
}

func (r *TradeRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Trade, error) {
	return r.findOne(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = $1 FOR UPDATE`, id)
}

func (r *TradeRepositoryAdapter) Update(ctx context.Context, t *entity.Trade) error {
	query := `UPDATE trades SET terms_agreed = $2, status = $3, actual_completion_date = $4 WHERE id = $1`
	res, err := r.ex(ctx).ExecContext(ctx, query, t.ID, t.TermsAgreed, string(t.Status), t.ActualCompletionDate)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить обмен")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrTradeNotFound
	}
	return nil
}

func (r *TradeRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
		WHERE user1_id = $1 OR user2_id = $1 ORDER BY start_date DESC`
	return r.list(ctx, query, userID)
}

func (r *TradeRepositoryAdapter) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Trade, error) {
	var rows []tradeRow
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить обмены")
	}
	result := make([]*entity.Trade, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *TradeRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Trade, error) {
	var row tradeRow
	if err := r.ex(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrTradeNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить обмен")
	}
	return row.toEntity(), nil
}

type tradeRow struct {
	ID                   uuid.UUID  `db:"id"`
	ProposalID           *uuid.UUID `db:"proposal_id"`
	User1ID              uuid.UUID  `db:"user1_id"`
	User2ID              uuid.UUID  `db:"user2_id"`
	Skill1ID             uuid.UUID  `db:"skill1_id"`
	Skill2ID             uuid.UUID  `db:"skill2_id"`
	TermsAgreed          string     `db:"terms_agreed"`
	Status               string     `db:"status"`
	StartDate            time.Time  `db:"start_date"`
	ActualCompletionDate *time.Time `db:"actual_completion_date"`
}

func (t *tradeRow) toEntity() *entity.Trade {
	status, _ := valueobject.NewTradeStatus(t.Status)
	return &entity.Trade{
		ID:                   t.ID,
		ProposalID:           t.ProposalID,
		User1ID:              t.User1ID,
		User2ID:              t.User2ID,
		Skill1ID:             t.Skill1ID,
		Skill2ID:             t.Skill2ID,
		TermsAgreed:          t.TermsAgreed,
		Status:               status,
		StartDate:            t.StartDate,
		ActualCompletionDate: t.ActualCompletionDate,
	}
}
