package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User - учётная запись участника обмена навыками.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash *string
	FirstName    string
	LastName     string
	GoogleID     *string
	Bio          string
	Location     string
	PhotoURL     *string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser создаёт активного пользователя. Email приводится к нижнему регистру.
func NewUser(email, username, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Username:  strings.TrimSpace(username),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayName - "имя фамилия", если имя заполнено, иначе username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = &hash
	u.UpdatedAt = time.Now()
}

// LinkGoogle привязывает Google аккаунт к пользователю.
func (u *User) LinkGoogle(googleID string) {
	u.GoogleID = &googleID
	u.UpdatedAt = time.Now()
}

// UpdateProfile меняет публичные поля профиля. nil означает "не менять".
func (u *User) UpdateProfile(firstName, lastName, bio, location *string) {
	if firstName != nil {
		u.FirstName = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		u.LastName = strings.TrimSpace(*lastName)
	}
	if bio != nil {
		u.Bio = *bio
	}
	if location != nil {
		u.Location = *location
	}
	u.UpdatedAt = time.Now()
}

func (u *User) SetPhoto(url string) {
	u.PhotoURL = &url
	u.UpdatedAt = time.Now()
}
