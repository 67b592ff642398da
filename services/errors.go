package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrResultNotFound     = errors.New("tournament result not found")

	// Бизнес-правила join-транзакции. Все пять различимы вызывающей стороной.
	ErrTournamentNotOpen = errors.New("tournament is not open for registration")
	ErrTournamentFull    = errors.New("tournament is full")
	ErrInsufficientFunds = errors.New("not enough wallet balance")
	ErrAlreadyJoined     = errors.New("user has already joined this tournament")

	// Хранилище не смогло применить транзакцию (конфликт сериализации,
	// таймаут, связь). Повтор всего join безопасен — частичных эффектов нет.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable, retry the request")

	// Ошибки валидации и переходов
	ErrValidationFailed          = errors.New("validation failed")
	ErrInvalidStatusTransition   = errors.New("invalid tournament status transition")
	ErrTournamentInvalidCapacity = errors.New("tournament slots must be positive")
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentGameRequired    = errors.New("tournament game is required")
	ErrNegativeEntryFee          = errors.New("entry fee cannot be negative")
	ErrComplaintMessageRequired  = errors.New("complaint message is required")

	// Конфликты
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already taken")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password is too short")
)
