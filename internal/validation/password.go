package validation

import (
	"unicode"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const MinPasswordLength = 8

// ValidatePassword проверяет пароль: минимум 8 символов,
// заглавные и строчные буквы и цифры.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperror.Validation("weak_password", "пароль должен быть не менее 8 символов")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	switch {
	case !hasUpper:
		return apperror.Validation("weak_password", "пароль должен содержать хотя бы одну заглавную букву")
	case !hasLower:
		return apperror.Validation("weak_password", "пароль должен содержать хотя бы одну строчную букву")
	case !hasNumber:
		return apperror.Validation("weak_password", "пароль должен содержать хотя бы одну цифру")
	}
	return nil
}
