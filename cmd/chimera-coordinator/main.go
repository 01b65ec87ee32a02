// Chimera Coordinator — управляет роем агентов.
//
// Coordinator:
//   - Принимает кампании через HTTP API
//   - Декомпозирует их в work items и раздаёт worker-агентам
//   - Судит результаты: одобрение, эскалация человеку или отказ
//   - Охраняет дневной бюджет транзакций через версионируемое состояние
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Chimera/internal/api"
	"github.com/shaiso/Chimera/internal/config"
	"github.com/shaiso/Chimera/internal/coordinator"
	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/judge"
	"github.com/shaiso/Chimera/internal/mq"
	"github.com/shaiso/Chimera/internal/queue"
	"github.com/shaiso/Chimera/internal/repo"
	"github.com/shaiso/Chimera/internal/scheduler"
	"github.com/shaiso/Chimera/internal/state"
	"github.com/shaiso/Chimera/internal/telemetry"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting chimera-coordinator")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool: без БД работаем в памяти, снимки и аудит не сохраняются
	var stateRepo *repo.StateRepo
	var verdictRepo *repo.VerdictRepo
	var initial *state.CoordinationState

	pool, err := repo.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Warn("database not available, running without persistence", "error", err)
	} else {
		defer pool.Close()
		logger.Info("database connected")

		stateRepo = repo.NewStateRepo(pool)
		verdictRepo = repo.NewVerdictRepo(pool)

		initial, err = stateRepo.LoadLatest(ctx)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			logger.Error("failed to load persisted state", "error", err)
			os.Exit(1)
		}
		if initial != nil {
			logger.Info("restored persisted state", "version_hash", initial.Version.Hash)
		}
	}

	storeCfg := state.Config{Initial: initial, Logger: logger}
	if stateRepo != nil {
		storeCfg.Persist = stateRepo
	}
	store := state.NewStore(storeCfg)

	// Дефолтный дневной лимит, если его нет в восстановленном состоянии
	if snapshot, _ := store.Snapshot(); snapshot.SpendLimits["USDC"] == 0 {
		if err := store.SetSpendLimit(ctx, "USDC", cfg.SpendLimitUSDC, "system"); err != nil {
			logger.Error("failed to set default spend limit", "error", err)
			os.Exit(1)
		}
	}

	// RabbitMQ: без брокера очереди живут в памяти процесса
	var workQueue queue.Queue[*domain.WorkItem]
	var reviewQueue queue.Queue[*domain.WorkResult]

	mqURL := cfg.RabbitURL
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, using in-memory queues", "error", err)
		workQueue = queue.NewMemory[*domain.WorkItem]("work.items", logger)
		reviewQueue = queue.NewMemory[*domain.WorkResult]("review.results", logger)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			os.Exit(1)
		}

		workQueue = queue.NewAMQPWorkQueue(mqConn, logger)
		reviewQueue = queue.NewAMQPReviewQueue(mqConn, logger)
	}

	governor := judge.NewBudgetGovernor(judge.GovernorConfig{
		Base:  judge.NewConfidenceJudge(),
		Store: store,
		SuspiciousThresholds: map[string]float64{
			"USDC": cfg.SuspiciousUSDC,
		},
		Logger: logger,
	})

	// Создаём coordinator
	coordCfg := coordinator.Config{
		Store:        store,
		WorkQueue:    workQueue,
		ReviewQueue:  reviewQueue,
		Governor:     governor,
		NumWorkers:   cfg.NumWorkers,
		PlanInterval: cfg.PlanInterval,
		PopTimeout:   cfg.PopTimeout,
		Logger:       logger,
	}
	if verdictRepo != nil {
		coordCfg.Verdicts = verdictRepo
	}
	coord := coordinator.New(coordCfg)

	if err := coord.Start(ctx); err != nil {
		logger.Error("failed to start coordinator", "error", err)
		os.Exit(1)
	}

	// Ежедневный сброс расходов
	sched, err := scheduler.New(scheduler.Config{
		Store:     store,
		ResetSpec: cfg.SpendResetSpec,
		Timezone:  cfg.SpendResetTZ,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// HTTP mux: API + /healthz + /metrics
	handler := api.NewHandler(api.Config{
		Coordinator: coord,
		Store:       store,
		Verdicts:    verdictRepo,
		Logger:      logger,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if mqConn != nil && !mqConn.IsConnected() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("broker disconnected"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		logger.Info("listening", "addr", cfg.APIAddr)
		if err := http.ListenAndServe(cfg.APIAddr, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	sched.Stop()
	coord.Stop()
	logger.Info("chimera-coordinator stopped")
}
