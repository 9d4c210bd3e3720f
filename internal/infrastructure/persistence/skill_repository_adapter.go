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

type SkillRepositoryAdapter struct {
	conn
}

func NewSkillRepositoryAdapter(db *sqlx.DB) *SkillRepositoryAdapter {
	return &SkillRepositoryAdapter{conn{db: db}}
}

func (r *SkillRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	var row skillRow
	if err := r.ex(ctx).GetContext(ctx, &row, `SELECT id, name, created_at FROM skills WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrSkillNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навык")
	}
	return row.toEntity(), nil
}

func (r *SkillRepositoryAdapter) FindByName(ctx context.Context, name string) (*entity.Skill, error) {
	var row skillRow
	query := `SELECT id, name, created_at FROM skills WHERE LOWER(name) = LOWER($1)`
	if err := r.ex(ctx).GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrSkillNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навык")
	}
	return row.toEntity(), nil
}

func (r *SkillRepositoryAdapter) GetOrCreate(ctx context.Context, skill *entity.Skill) (*entity.Skill, error) {
	query := `INSERT INTO skills (id, name, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (LOWER(name)) DO NOTHING`
	if _, err := r.ex(ctx).ExecContext(ctx, query, skill.ID, skill.Name, skill.CreatedAt); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать навык")
	}
	return r.FindByName(ctx, skill.Name)
}

func (r *SkillRepositoryAdapter) List(ctx context.Context, search string, limit, offset int) ([]*entity.Skill, error) {
	var rows []skillRow
	query := `SELECT id, name, created_at FROM skills
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	if err := r.ex(ctx).SelectContext(ctx, &rows, query, search, limitOrDefault(limit), offset); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки")
	}
	result := make([]*entity.Skill, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

type skillRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *skillRow) toEntity() *entity.Skill {
	return &entity.Skill{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

type UserSkillRepositoryAdapter struct {
	conn
}

func NewUserSkillRepositoryAdapter(db *sqlx.DB) *UserSkillRepositoryAdapter {
	return &UserSkillRepositoryAdapter{conn{db: db}}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name AS skill_name, us.skill_type,
	us.proficiency_level, us.details, us.created_at
	FROM user_skills us JOIN skills s ON s.id = us.skill_id`

func (r *UserSkillRepositoryAdapter) Add(ctx context.Context, us *entity.UserSkill) (bool, error) {
	query := `INSERT INTO user_skills (id, user_id, skill_id, skill_type, proficiency_level, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, skill_id, skill_type) DO NOTHING`
	res, err := r.ex(ctx).ExecContext(ctx, query,
		us.ID, us.UserID, us.SkillID, string(us.Type), us.ProficiencyLevel, us.Details, us.CreatedAt,
	)
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось добавить навык пользователю")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserSkillRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserSkill, error) {
	var row userSkillRow
	if err := r.ex(ctx).GetContext(ctx, &row, userSkillSelect+` WHERE us.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserSkillNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навык пользователя")
	}
	return row.toEntity(), nil
}

func (r *UserSkillRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID, skillType *valueobject.SkillType) ([]*entity.UserSkill, error) {
	var rows []userSkillRow
	var err error
	if skillType != nil {
		err = r.ex(ctx).SelectContext(ctx, &rows,
			userSkillSelect+` WHERE us.user_id = $1 AND us.skill_type = $2 ORDER BY s.name`, userID, string(*skillType))
	} else {
		err = r.ex(ctx).SelectContext(ctx, &rows,
			userSkillSelect+` WHERE us.user_id = $1 ORDER BY us.skill_type, s.name`, userID)
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки пользователя")
	}
	result := make([]*entity.UserSkill, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *UserSkillRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ex(ctx).ExecContext(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить навык пользователя")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrUserSkillNotFound
	}
	return nil
}

type userSkillRow struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	SkillID          uuid.UUID `db:"skill_id"`
	SkillName        string    `db:"skill_name"`
	SkillType        string    `db:"skill_type"`
	ProficiencyLevel *string   `db:"proficiency_level"`
	Details          *string   `db:"details"`
	CreatedAt        time.Time `db:"created_at"`
}

func (u *userSkillRow) toEntity() *entity.UserSkill {
	return &entity.UserSkill{
		ID:               u.ID,
		UserID:           u.UserID,
		SkillID:          u.SkillID,
		SkillName:        u.SkillName,
		Type:             valueobject.SkillType(u.SkillType),
		ProficiencyLevel: u.ProficiencyLevel,
		Details:          u.Details,
		CreatedAt:        u.CreatedAt,
	}
}
