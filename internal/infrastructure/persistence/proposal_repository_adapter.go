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

const proposalColumns = `id, proposer_id, recipient_id, skill_offered_id, skill_desired_id,
	message, status, created_at, last_status_update`

type ProposalRepositoryAdapter struct {
	conn
}

func NewProposalRepositoryAdapter(db *sqlx.DB) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{conn{db: db}}
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, p *entity.TradeProposal) error {
	query := `INSERT INTO trade_proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.ex(ctx).ExecContext(ctx, query,
		p.ID, p.ProposerID, p.RecipientID, p.SkillOfferedID, p.SkillDesiredID,
		p.Message, string(p.Status), p.CreatedAt, p.LastStatusUpdate,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать предложение")
	}
	return nil
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error) {
	return r.findOne(ctx, `SELECT `+proposalColumns+` FROM trade_proposals WHERE id = $1`, id)
}

func (r *ProposalRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TradeProposal, error) {
	return r.findOne(ctx, `SELECT `+proposalColumns+` FROM trade_proposals WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProposalRepositoryAdapter) UpdateStatus(ctx context.Context, p *entity.TradeProposal) error {
	query := `UPDATE trade_proposals SET status = $2, last_status_update = $3 WHERE id = $1`
	res, err := r.ex(ctx).ExecContext(ctx, query, p.ID, string(p.Status), p.LastStatusUpdate)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID, box repository.ProposalBox) ([]*entity.TradeProposal, error) {
	var where string
	switch box {
	case repository.ProposalBoxSent:
		where = `proposer_id = $1`
	case repository.ProposalBoxReceived:
		where = `recipient_id = $1`
	default:
		where = `(proposer_id = $1 OR recipient_id = $1)`
	}

	var rows []proposalRow
	query := `SELECT ` + proposalColumns + ` FROM trade_proposals WHERE ` + where + ` ORDER BY created_at DESC`
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения")
	}
	result := make([]*entity.TradeProposal, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *ProposalRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.TradeProposal, error) {
	var row proposalRow
	if err := r.ex(ctx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProposalNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложение")
	}
	return row.toEntity(), nil
}

type proposalRow struct {
	ID               uuid.UUID `db:"id"`
	ProposerID       uuid.UUID `db:"proposer_id"`
	RecipientID      uuid.UUID `db:"recipient_id"`
	SkillOfferedID   uuid.UUID `db:"skill_offered_id"`
	SkillDesiredID   uuid.UUID `db:"skill_desired_id"`
	Message          string    `db:"message"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	LastStatusUpdate time.Time `db:"last_status_update"`
}

func (p *proposalRow) toEntity() *entity.TradeProposal {
	status, _ := valueobject.NewProposalStatus(p.Status)
	return &entity.TradeProposal{
		ID:               p.ID,
		ProposerID:       p.ProposerID,
		RecipientID:      p.RecipientID,
		SkillOfferedID:   p.SkillOfferedID,
		SkillDesiredID:   p.SkillDesiredID,
		Message:          p.Message,
		Status:           status,
		CreatedAt:        p.CreatedAt,
		LastStatusUpdate: p.LastStatusUpdate,
	}
}
