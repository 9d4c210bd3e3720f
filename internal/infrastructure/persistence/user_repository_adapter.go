package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, google_id,
	bio, location, photo_url, is_active, last_login_at, created_at, updated_at`

type UserRepositoryAdapter struct {
	conn
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{conn{db: db}}
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.ex(ctx).ExecContext(ctx, query,
		u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.GoogleID,
		u.Bio, u.Location, u.PhotoURL, u.IsActive, u.LastLoginAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError(err, "не удалось создать пользователя")
	}
	return nil
}

func (r *UserRepositoryAdapter) Update(ctx context.Context, u *entity.User) error {
	query := `UPDATE users SET email = $2, username = $3, password_hash = $4, first_name = $5,
		last_name = $6, google_id = $7, bio = $8, location = $9, photo_url = $10, is_active = $11,
		updated_at = $12
		WHERE id = $1`
	res, err := r.ex(ctx).ExecContext(ctx, query,
		u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.GoogleID,
		u.Bio, u.Location, u.PhotoURL, u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError(err, "не удалось обновить пользователя")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepositoryAdapter) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

func (r *UserRepositoryAdapter) ExistsUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`
	if err := r.ex(ctx).GetContext(ctx, &exists, query, username); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить имя пользователя")
	}
	return exists, nil
}

func (r *UserRepositoryAdapter) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.ex(ctx).ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить время входа")
	}
	return nil
}

func (r *UserRepositoryAdapter) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.ex(ctx).SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY created_at`); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователей")
	}
	return ids, nil
}

func (r *UserRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var row userRow
	if err := r.ex(ctx).GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить пользователя")
	}
	return row.toEntity(), nil
}

func mapUserWriteError(err error, message string) error {
	switch {
	case isUniqueViolation(err, "users_email_key"):
		return apperror.ErrEmailTaken
	case isUniqueViolation(err, "users_username_key"):
		return apperror.ErrUsernameTaken
	case isUniqueViolation(err, ""):
		return apperror.Wrap(err, apperror.ErrCodeAlreadyExists, "пользователь уже существует")
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

type userRow struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	Username     string     `db:"username"`
	PasswordHash *string    `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	GoogleID     *string    `db:"google_id"`
	Bio          string     `db:"bio"`
	Location     string     `db:"location"`
	PhotoURL     *string    `db:"photo_url"`
	IsActive     bool       `db:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *userRow) toEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		GoogleID:     u.GoogleID,
		Bio:          u.Bio,
		Location:     u.Location,
		PhotoURL:     u.PhotoURL,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
