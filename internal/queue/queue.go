package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Queue — строго FIFO канал между ролями конвейера.
//
// Гарантии:
//   - Push добавляет в хвост и не переупорядочивает.
//   - Pop снимает голову, блокируясь не дольше timeout; таймаут —
//     это не ошибка, а сигнал циклу перепроверить условие отмены.
//   - Каждый Push в итоге виден ровно одному Pop; порядок между
//     разными очередями или конкурентными производителями
//     не гарантируется.
//   - Len — advisory-глубина, может устареть сразу после возврата.
type Queue[T any] interface {
	Push(ctx context.Context, v T) error
	Pop(ctx context.Context, timeout time.Duration) (T, bool, error)
	Len(ctx context.Context) (int, error)
}

// Encode сериализует значение в каноническую field-tagged форму.
//
// encoding/json сортирует ключи карт и сохраняет порядок полей
// структур, поэтому serialize → deserialize → serialize даёт
// байт-идентичный результат для неизменённых данных.
func Encode[T any](v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Decode разбирает каноническую форму обратно в значение.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}
