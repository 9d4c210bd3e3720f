package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/swapo-org/swapo-backend/internal/pkg/apperror"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxNameLength     = 50
	MaxBioLength      = 1000
	MaxLocationLength = 100
	MaxEmailLength    = 254
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	usernameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(reason, fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(reason, fmt.Sprintf("%s должен быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.Validation(reason, fmt.Sprintf("%s должен быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.Validation("email_required", "email обязателен")
	}
	if len(email) > MaxEmailLength {
		return apperror.Validation("invalid_email", "email слишком длинный")
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return apperror.Validation("invalid_email", "некорректный формат email")
	}
	if len(local) == 0 || len(local) > 64 {
		return apperror.Validation("invalid_email", "локальная часть email должна быть от 1 до 64 символов")
	}
	if !emailLocalRegex.MatchString(local) {
		return apperror.Validation("invalid_email", "локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domain) {
		return apperror.Validation("invalid_email", "доменная часть email имеет некорректный формат")
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.Validation("username_required", "имя пользователя обязательно")
	}

	if err := ValidateLength("invalid_username", "имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	if !usernameRegex.MatchString(username) {
		return apperror.Validation("invalid_username", "имя пользователя может содержать только буквы, цифры, точку и подчеркивание")
	}

	if unicode.IsDigit(rune(username[0])) {
		return apperror.Validation("invalid_username", "имя пользователя не может начинаться с цифры")
	}
	return nil
}

// ValidateName проверяет имя или фамилию. Пустое значение допустимо.
func ValidateName(fieldName, value string) error {
	return ValidateLength("invalid_name", fieldName, strings.TrimSpace(value), 0, MaxNameLength)
}

func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("invalid_bio", "биография", strings.TrimSpace(*bio), 0, MaxBioLength)
}

func ValidateLocation(location *string) error {
	if location == nil {
		return nil
	}
	return ValidateLength("invalid_location", "местоположение", strings.TrimSpace(*location), 0, MaxLocationLength)
}
