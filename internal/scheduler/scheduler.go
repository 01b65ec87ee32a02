package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/Chimera/internal/state"
	"github.com/shaiso/Chimera/internal/telemetry"
)

// defaultResetSpec — ежедневный сброс расходов в полночь.
const defaultResetSpec = "0 0 * * *"

// actorID — идентификатор планировщика в commit'ах состояния.
const actorID = "scheduler"

// cronParser — парсер cron-выражений (стандартные 5 полей).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Scheduler сбрасывает дневные расходы по расписанию.
//
// Бюджетные лимиты дневные: в полночь счётчики DailySpend
// обнуляются через обычный commit в Store, так что сброс
// подчиняется той же оптимистичной блокировке, что и резервирование.
type Scheduler struct {
	store  *state.Store
	runner *cron.Cron
	logger *slog.Logger
	spec   string
}

// Config — конфигурация Scheduler.
type Config struct {
	// Store — хранилище координационного состояния (обязательно).
	Store *state.Store

	// ResetSpec — cron-выражение сброса (default: "0 0 * * *").
	ResetSpec string

	// Timezone — таймзона расписания (default: UTC).
	Timezone string

	// Logger — логгер (default: slog.Default()).
	Logger *slog.Logger
}

// New создаёт новый Scheduler.
func New(cfg Config) (*Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	spec := cfg.ResetSpec
	if spec == "" {
		spec = defaultResetSpec
	}
	if err := ValidateCronExpr(spec); err != nil {
		return nil, err
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
	}

	return &Scheduler{
		store:  cfg.Store,
		runner: cron.New(cron.WithParser(cronParser), cron.WithLocation(loc)),
		logger: logger,
		spec:   spec,
	}, nil
}

// Start регистрирует задания и запускает планировщик.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.runner.AddFunc(s.spec, func() {
		if err := s.ResetDailySpend(ctx); err != nil {
			s.logger.Error("daily spend reset failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register reset job: %w", err)
	}

	s.runner.Start()
	s.logger.Info("scheduler started", "reset_spec", s.spec)
	return nil
}

// Stop останавливает планировщик и дожидается выполняющихся заданий.
func (s *Scheduler) Stop() {
	stopCtx := s.runner.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}

// ResetDailySpend обнуляет дневные счётчики расходов.
func (s *Scheduler) ResetDailySpend(ctx context.Context) error {
	var currencies []string

	err := s.store.Update(ctx, actorID, func(st *state.CoordinationState) error {
		currencies = currencies[:0]
		for currency := range st.DailySpend {
			currencies = append(currencies, currency)
		}
		st.DailySpend = make(map[string]float64)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset daily spend: %w", err)
	}

	for _, currency := range currencies {
		telemetry.DailySpend.WithLabelValues(currency).Set(0)
	}

	s.logger.Info("daily spend reset", "currencies", len(currencies))
	return nil
}

// ValidateCronExpr проверяет валидность cron-выражения.
func ValidateCronExpr(cronExpr string) error {
	_, err := cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return nil
}
