package coordinator

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/telemetry"
)

// EscalationList — результаты, ожидающие решения человека (HITL).
//
// Список принадлежит координатору и намеренно не защищён дисциплиной
// compare-and-commit общего состояния: единственный писатель —
// judging-цикл, плюс внешние approve/reject. Мьютекс закрывает гонку
// между ними; удаление идемпотентно — второй вызов по тому же ID
// получает ErrNotFound.
type EscalationList struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.WorkResult
	order   []uuid.UUID
}

// NewEscalationList создаёт пустой список.
func NewEscalationList() *EscalationList {
	return &EscalationList{
		entries: make(map[uuid.UUID]*domain.WorkResult),
	}
}

// Add паркует результат до решения человека.
func (l *EscalationList) Add(result *domain.WorkResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[result.WorkItemID]; exists {
		return
	}

	l.entries[result.WorkItemID] = result
	l.order = append(l.order, result.WorkItemID)
	telemetry.EscalationDepth.Set(float64(len(l.entries)))
}

// Pending возвращает ожидающие записи в порядке поступления.
func (l *EscalationList) Pending() []*domain.WorkResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make([]*domain.WorkResult, 0, len(l.entries))
	for _, id := range l.order {
		if entry, ok := l.entries[id]; ok {
			pending = append(pending, entry)
		}
	}
	return pending
}

// Take удаляет и возвращает запись. Ровно один вызов по каждому ID
// успешен; последующие получают ErrNotFound.
func (l *EscalationList) Take(id uuid.UUID) (*domain.WorkResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(l.entries, id)
	for i, entryID := range l.order {
		if entryID == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}

	telemetry.EscalationDepth.Set(float64(len(l.entries)))
	return entry, nil
}

// Len возвращает количество ожидающих записей.
func (l *EscalationList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
