package state

import "errors"

// Ошибки хранилища состояния.
var (
	// ErrConflict — OCC-конфликт: состояние изменилось после чтения
	// снимка. Всегда retryable — вызывающий повторяет цикл
	// read-modify-commit со свежим снимком.
	ErrConflict = errors.New("state version conflict")

	// ErrInvalidCandidate — кандидат состояния имеет недопустимую
	// форму (nil или неинициализированные карты). Ошибка программиста,
	// фатальна для операции и не повторяется.
	ErrInvalidCandidate = errors.New("invalid candidate state")

	// ErrRetryExhausted — цикл read-modify-commit не завершился
	// за отведённое число попыток.
	ErrRetryExhausted = errors.New("commit retry attempts exhausted")
)
