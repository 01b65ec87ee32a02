package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config — конфигурация координатора из переменных окружения.
type Config struct {
	// APIAddr — адрес HTTP API.
	APIAddr string `env:"API_ADDR" envDefault:":8080"`

	// DBURL — DSN PostgreSQL. Пустое значение — работа без БД,
	// снимки состояния и аудит вердиктов не сохраняются.
	DBURL string `env:"DB_URL"`

	// RabbitURL — URL RabbitMQ. Пустое значение — очереди в памяти.
	RabbitURL string `env:"RABBITMQ_URL"`

	// NumWorkers — размер пула worker-циклов.
	NumWorkers int `env:"NUM_WORKERS" envDefault:"3"`

	// PlanInterval — интервал planning-цикла.
	PlanInterval time.Duration `env:"PLAN_INTERVAL" envDefault:"5s"`

	// PopTimeout — таймаут блокирующего чтения из очередей.
	PopTimeout time.Duration `env:"POP_TIMEOUT" envDefault:"5s"`

	// SpendLimitUSDC — дневной лимит расходов в USDC.
	SpendLimitUSDC float64 `env:"SPEND_LIMIT_USDC" envDefault:"50"`

	// SuspiciousUSDC — порог подозрительной суммы в USDC.
	SuspiciousUSDC float64 `env:"SUSPICIOUS_THRESHOLD_USDC" envDefault:"100"`

	// SpendResetSpec — cron-выражение ежедневного сброса расходов.
	SpendResetSpec string `env:"SPEND_RESET_SPEC" envDefault:"0 0 * * *"`

	// SpendResetTZ — таймзона сброса расходов.
	SpendResetTZ string `env:"SPEND_RESET_TZ" envDefault:"UTC"`
}

// Load читает конфигурацию из окружения.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
