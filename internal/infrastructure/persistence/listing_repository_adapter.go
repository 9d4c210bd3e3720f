package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/domain/repository"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

type ListingRepositoryAdapter struct {
	conn
}

func NewListingRepositoryAdapter(db *sqlx.DB) *ListingRepositoryAdapter {
	return &ListingRepositoryAdapter{conn{db: db}}
}

const listingSelect = `SELECT l.id, l.user_id, l.skill_offered_id, so.name AS skill_offered_name,
	l.skill_desired_id, sd.name AS skill_desired_name, l.title, l.description, l.status,
	l.location_preference, l.created_at, l.updated_at
	FROM skill_listings l
	JOIN skills so ON so.id = l.skill_offered_id
	JOIN skills sd ON sd.id = l.skill_desired_id`

func (r *ListingRepositoryAdapter) Create(ctx context.Context, l *entity.SkillListing) error {
	query := `INSERT INTO skill_listings (id, user_id, skill_offered_id, skill_desired_id, title,
		description, status, location_preference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.ex(ctx).ExecContext(ctx, query,
		l.ID, l.UserID, l.SkillOfferedID, l.SkillDesiredID, l.Title,
		l.Description, string(l.Status), l.LocationPreference, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать объявление")
	}
	return nil
}

func (r *ListingRepositoryAdapter) Update(ctx context.Context, l *entity.SkillListing) error {
	query := `UPDATE skill_listings SET skill_offered_id = $2, skill_desired_id = $3, title = $4,
		description = $5, status = $6, location_preference = $7, updated_at = $8
		WHERE id = $1`
	res, err := r.ex(ctx).ExecContext(ctx, query,
		l.ID, l.SkillOfferedID, l.SkillDesiredID, l.Title,
		l.Description, string(l.Status), l.LocationPreference, l.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить объявление")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ex(ctx).ExecContext(ctx, `DELETE FROM skill_listings WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить объявление")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	var row listingRow
	if err := r.ex(ctx).GetContext(ctx, &row, listingSelect+` WHERE l.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить объявление")
	}
	return row.toEntity(), nil
}

func (r *ListingRepositoryAdapter) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.SkillListing, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("l.user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("l.status = $%d", len(args)))
	}

	query := listingSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)
	query += fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var rows []listingRow
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить объявления")
	}
	result := make([]*entity.SkillListing, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

type listingRow struct {
	ID                 uuid.UUID `db:"id"`
	UserID             uuid.UUID `db:"user_id"`
	SkillOfferedID     uuid.UUID `db:"skill_offered_id"`
	SkillOfferedName   string    `db:"skill_offered_name"`
	SkillDesiredID     uuid.UUID `db:"skill_desired_id"`
	SkillDesiredName   string    `db:"skill_desired_name"`
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	Status             string    `db:"status"`
	LocationPreference string    `db:"location_preference"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (l *listingRow) toEntity() *entity.SkillListing {
	status, _ := valueobject.NewListingStatus(l.Status)
	return &entity.SkillListing{
		ID:                 l.ID,
		UserID:             l.UserID,
		SkillOfferedID:     l.SkillOfferedID,
		SkillOfferedName:   l.SkillOfferedName,
		SkillDesiredID:     l.SkillDesiredID,
		SkillDesiredName:   l.SkillDesiredName,
		Title:              l.Title,
		Description:        l.Description,
		Status:             status,
		LocationPreference: l.LocationPreference,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

type BlockRepositoryAdapter struct {
	conn
}

func NewBlockRepositoryAdapter(db *sqlx.DB) *BlockRepositoryAdapter {
	return &BlockRepositoryAdapter{conn{db: db}}
}

func (r *BlockRepositoryAdapter) Create(ctx context.Context, b *entity.UserBlock) (*entity.UserBlock, error) {
	query := `INSERT INTO user_blocks (id, blocker_id, blocked_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING`
	if _, err := r.ex(ctx).ExecContext(ctx, query, b.ID, b.BlockerID, b.BlockedID, b.CreatedAt); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось заблокировать пользователя")
	}

	return r.FindPair(ctx, b.BlockerID, b.BlockedID)
}

func (r *BlockRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserBlock, error) {
	var row blockRow
	err := r.ex(ctx).GetContext(ctx, &row, `SELECT id, blocker_id, blocked_id, created_at FROM user_blocks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBlockNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить блокировку")
	}
	return row.toEntity(), nil
}

func (r *BlockRepositoryAdapter) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error) {
	var rows []blockRow
	query := `SELECT id, blocker_id, blocked_id, created_at FROM user_blocks
		WHERE blocker_id = $1 ORDER BY created_at DESC`
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, blockerID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить блокировки")
	}
	result := make([]*entity.UserBlock, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *BlockRepositoryAdapter) FindPair(ctx context.Context, blockerID, blockedID uuid.UUID) (*entity.UserBlock, error) {
	var row blockRow
	query := `SELECT id, blocker_id, blocked_id, created_at FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2`
	if err := r.ex(ctx).GetContext(ctx, &row, query, blockerID, blockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBlockNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить блокировку")
	}
	return row.toEntity(), nil
}

func (r *BlockRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ex(ctx).ExecContext(ctx, `DELETE FROM user_blocks WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось снять блокировку")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrBlockNotFound
	}
	return nil
}

type blockRow struct {
	ID        uuid.UUID `db:"id"`
	BlockerID uuid.UUID `db:"blocker_id"`
	BlockedID uuid.UUID `db:"blocked_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (b *blockRow) toEntity() *entity.UserBlock {
	return &entity.UserBlock{ID: b.ID, BlockerID: b.BlockerID, BlockedID: b.BlockedID, CreatedAt: b.CreatedAt}
}
