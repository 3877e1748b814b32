package apperrors

import "fmt"

var (
	// Авторизация
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrSessionNotFound    = fmt.Errorf("сохранённая сессия не найдена")

	// Общие
	ErrNotFound        = fmt.Errorf("запись не найдена")
	ErrBadRequest      = fmt.Errorf("неверный запрос")
	ErrRequestCanceled = fmt.Errorf("запрос отменён")
)

// ApiError — ошибка, которую сообщил сервер: статус, сообщение и
// произвольные дополнительные поля из тела ответа.
type ApiError struct {
	Status  int
	Message string
	Extra   map[string]any
}

func (e *ApiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func NewApiError(status int, message string, extra map[string]any) *ApiError {
	return &ApiError{Status: status, Message: message, Extra: extra}
}

// DecodeError возвращают адаптеры, когда в ответе сервера нет
// обязательного поля или форма поля не совпадает с ожидаемой.
type DecodeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: field %q: %s", e.Entity, e.Field, e.Reason)
}

func NewDecodeError(entity, field, reason string) error {
	return &DecodeError{Entity: entity, Field: field, Reason: reason}
}

// InvalidInputError — ошибка клиентской валидации формы.
type InvalidInputError struct {
	Message string
	// Поле -> список сообщений, для инлайн-вывода под полями формы.
	Fields map[string][]string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
