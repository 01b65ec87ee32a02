package worker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
)

// TransactionExecutor — прототип исполнителя финансовых транзакций.
//
// Симулирует перевод через wallet-коллаборатора: продуктивная версия
// подписывает и отправляет on-chain транзакцию. Результат всегда
// содержит вложенную запись "transaction", поэтому judging-цикл
// направляет его в BudgetGovernor.
type TransactionExecutor struct {
	// Currency, Amount, Recipient — параметры симулируемого перевода.
	Currency  string
	Amount    float64
	Recipient string
}

// NewTransactionExecutor создаёт executor с параметрами по умолчанию.
func NewTransactionExecutor() *TransactionExecutor {
	return &TransactionExecutor{
		Currency:  "USDC",
		Amount:    5.0,
		Recipient: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	}
}

// Execute симулирует перевод средств.
func (e *TransactionExecutor) Execute(_ context.Context, item *domain.WorkItem) (*ExecutionResult, error) {
	if item.Context.Goal == "" {
		return nil, ErrEmptyGoal
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", item.ID, e.Recipient, time.Now().UnixNano())))
	txHash := "0x" + hex.EncodeToString(sum[:])

	return &ExecutionResult{
		Output: map[string]any{
			"skill":   "send_payment",
			"tx_hash": txHash,
			"transaction": map[string]any{
				"currency":   e.Currency,
				"amount":     e.Amount,
				"to_address": e.Recipient,
			},
		},
		Confidence: 0.95,
	}, nil
}
