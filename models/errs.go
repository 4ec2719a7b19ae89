package models

import (
	"github.com/pkg/errors"
)

// Типы ошибок ядра согласования. Контроллеры сопоставляют их
// с HTTP статусами через errors.Is, подробности - в тексте ошибки.
var (
	// ErrWrongRole - действие недоступно для роли пользователя
	ErrWrongRole = errors.New("действие недоступно для вашей роли")
	// ErrInvalidState - действие недопустимо в текущем статусе заявки
	ErrInvalidState = errors.New("действие недопустимо в текущем статусе заявки")
	// ErrAlreadyTerminal - по заявке уже принято финальное решение
	ErrAlreadyTerminal = errors.New("по заявке уже принято финальное решение")
	// ErrConflict - параллельное решение другого согласующего успело раньше
	ErrConflict = errors.New("заявка уже была рассмотрена, обновите страницу")
	// ErrNotFound - заявка не найдена
	ErrNotFound = errors.New("заявка не найдена")
	// ErrStoreUnavailable - хранилище недоступно, запрос можно повторить
	ErrStoreUnavailable = errors.New("хранилище временно недоступно, повторите запрос")
)

// ValidationError - ошибка входных данных, пользователь должен исправить запрос
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func NewValidationError(msg string) error {
	return ValidationError{msg: msg}
}

func IsValidationError(err error) bool {
	var vErr ValidationError
	return errors.As(err, &vErr)
}
