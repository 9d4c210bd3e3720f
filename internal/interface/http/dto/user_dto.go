package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/swapo-org/swapo-backend/internal/domain/entity"
	"github.com/swapo-org/swapo-backend/internal/service"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Username  string `json:"username"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
}

// UserResponse - собственный профиль, с email.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Bio          string     `json:"bio"`
	Location     string     `json:"location"`
	PhotoURL     *string    `json:"photo_url"`
	HasPassword  bool       `json:"has_password"`
	GoogleLinked bool       `json:"google_linked"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PublicUserResponse - профиль, видимый другим пользователям.
type PublicUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	PhotoURL  *string   `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Bio:          u.Bio,
		Location:     u.Location,
		PhotoURL:     u.PhotoURL,
		HasPassword:  u.HasPassword(),
		GoogleLinked: u.GoogleID != nil,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}

func ToPublicUserResponse(u *entity.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Location:  u.Location,
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}

func ToAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:   ToUserResponse(result.User),
		Tokens: result.TokenPair,
	}
}
