package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError - ошибка приложения со стабильным кодом и причиной.
// Reason - машиночитаемая причина (snake_case), не меняется между релизами.
type AppError struct {
	Code       ErrorCode
	Reason     string
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и причине, чтобы errors.Is работал
// и для копий предопределённых ошибок.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reason == t.Reason && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// NewWithReason создаёт ошибку со стабильной причиной.
func NewWithReason(code ErrorCode, reason, message string) *AppError {
	err := New(code, message)
	err.Reason = reason
	return err
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation - короткая форма для ошибок валидации входных данных.
func Validation(reason, message string) *AppError {
	return NewWithReason(ErrCodeValidation, reason, message)
}

// Конфликт состояния отдаётся как 400: клиент прислал запрос,
// недопустимый для текущего статуса сущности.
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeConflict:
		return http.StatusBadRequest
	case ErrCodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func IsForbidden(err error) bool {
	return hasCode(err, ErrCodeForbidden)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

func IsAlreadyExists(err error) bool {
	return hasCode(err, ErrCodeAlreadyExists)
}

// ReasonOf возвращает причину ошибки или пустую строку.
func ReasonOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

var (
	ErrUserNotFound         = NewWithReason(ErrCodeNotFound, "user_not_found", "пользователь не найден")
	ErrSkillNotFound        = NewWithReason(ErrCodeNotFound, "skill_not_found", "навык не найден")
	ErrUserSkillNotFound    = NewWithReason(ErrCodeNotFound, "user_skill_not_found", "навык пользователя не найден")
	ErrListingNotFound      = NewWithReason(ErrCodeNotFound, "listing_not_found", "объявление не найдено")
	ErrBlockNotFound        = NewWithReason(ErrCodeNotFound, "block_not_found", "блокировка не найдена")
	ErrProposalNotFound     = NewWithReason(ErrCodeNotFound, "proposal_not_found", "предложение не найдено")
	ErrTradeNotFound        = NewWithReason(ErrCodeNotFound, "trade_not_found", "обмен не найден")
	ErrNotificationNotFound = NewWithReason(ErrCodeNotFound, "notification_not_found", "уведомление не найдено")

	ErrUnauthorized       = NewWithReason(ErrCodeUnauthorized, "unauthorized", "требуется авторизация")
	ErrInvalidCredentials = NewWithReason(ErrCodeUnauthorized, "invalid_credentials", "неверные учетные данные")
	ErrInvalidToken       = NewWithReason(ErrCodeUnauthorized, "invalid_token", "токен невалиден")
	ErrAccountDisabled    = NewWithReason(ErrCodeForbidden, "account_disabled", "аккаунт заблокирован")
	ErrForbidden          = NewWithReason(ErrCodeForbidden, "forbidden", "недостаточно прав")

	ErrEmailTaken    = NewWithReason(ErrCodeAlreadyExists, "email_taken", "email уже зарегистрирован")
	ErrUsernameTaken = NewWithReason(ErrCodeAlreadyExists, "username_taken", "имя пользователя занято")

	ErrSelfProposal     = Validation("self_proposal", "нельзя предложить обмен самому себе")
	ErrInvalidSkill     = Validation("invalid_skill", "указан несуществующий навык")
	ErrSelfMessage      = Validation("self_message", "нельзя отправить сообщение самому себе")
	ErrSelfBlock        = Validation("self_block", "нельзя заблокировать самого себя")
	ErrPasswordNotSet   = Validation("password_not_set", "аккаунт создан через Google, пароль не задан")
	ErrWrongOldPassword = Validation("wrong_old_password", "текущий пароль указан неверно")

	ErrNotProposalRecipient   = NewWithReason(ErrCodeForbidden, "not_proposal_recipient", "только получатель может ответить на предложение")
	ErrNotProposalParticipant = NewWithReason(ErrCodeForbidden, "not_proposal_participant", "вы не участвуете в этом предложении")
	ErrNotTradeParticipant    = NewWithReason(ErrCodeForbidden, "not_trade_participant", "вы не участвуете в этом обмене")
	ErrNotOwner               = NewWithReason(ErrCodeForbidden, "not_owner", "ресурс принадлежит другому пользователю")

	ErrProposalAlreadyAccepted = NewWithReason(ErrCodeConflict, "proposal_already_accepted", "предложение уже принято")
	ErrProposalAlreadyRejected = NewWithReason(ErrCodeConflict, "proposal_already_rejected", "предложение уже отклонено")
	ErrTradeAlreadyCompleted   = NewWithReason(ErrCodeConflict, "trade_already_completed", "обмен уже завершён")
	ErrTradeInvalidTransition  = NewWithReason(ErrCodeConflict, "trade_invalid_transition", "недопустимый переход статуса обмена")
)
