package coordinator

import "errors"

// Ошибки координатора.
var (
	// ErrNotFound — запись эскалации не найдена.
	// Повторный approve/reject того же ID безопасен: второй вызов
	// получает эту ошибку, а не ломает состояние.
	ErrNotFound = errors.New("escalation entry not found")

	// ErrCampaignExists — кампания с таким ID уже зарегистрирована.
	ErrCampaignExists = errors.New("campaign already exists")

	// ErrStopped — координатор остановлен.
	ErrStopped = errors.New("coordinator stopped")
)
