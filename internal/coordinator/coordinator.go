package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/judge"
	"github.com/shaiso/Chimera/internal/planner"
	"github.com/shaiso/Chimera/internal/queue"
	"github.com/shaiso/Chimera/internal/state"
	"github.com/shaiso/Chimera/internal/telemetry"
	"github.com/shaiso/Chimera/internal/worker"
)

// Default configuration values.
const (
	defaultPlanInterval = 5 * time.Second
	defaultPopTimeout   = 5 * time.Second
	defaultNumWorkers   = 3
)

// actorID — идентификатор координатора в commit'ах состояния.
const actorID = "coordinator"

// VerdictRecorder сохраняет вынесенные вердикты для аудита.
// Реализуется repo.VerdictRepo; nil — аудит выключен.
type VerdictRecorder interface {
	RecordVerdict(ctx context.Context, result *domain.WorkResult, decision domain.Decision) error
}

// Coordinator владеет жизненным циклом конкурентных циклов роя.
//
// Coordinator — центральный компонент системы, который:
//   - Засевает кампании в Store и запускает их декомпозицию
//   - Ведёт planning-цикл (кампании → work items → WorkQueue)
//   - Ведёт N worker-циклов (WorkQueue → выполнение → ReviewQueue)
//   - Ведёт judging-цикл (ReviewQueue → вердикт → commit/эскалация/отказ)
//   - Держит список эскалаций для человеческого решения
type Coordinator struct {
	store       *state.Store
	workQueue   queue.Queue[*domain.WorkItem]
	reviewQueue queue.Queue[*domain.WorkResult]

	decomposer planner.Decomposer
	judge      judge.Evaluator
	governor   judge.Evaluator
	agents     []*worker.Agent

	escalations *EscalationList
	verdicts    VerdictRecorder

	// Configuration
	planInterval time.Duration
	popTimeout   time.Duration

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Coordinator.
type Config struct {
	// Store — хранилище координационного состояния (обязательно).
	Store *state.Store

	// WorkQueue — очередь Planner → Worker (обязательно).
	WorkQueue queue.Queue[*domain.WorkItem]

	// ReviewQueue — очередь Worker → Judge (обязательно).
	ReviewQueue queue.Queue[*domain.WorkResult]

	// Decomposer — коллаборатор декомпозиции (default: planner.Heuristic).
	Decomposer planner.Decomposer

	// Judge — базовый судья (default: judge.ConfidenceJudge).
	Judge judge.Evaluator

	// Governor — судья транзакций (default: judge.BudgetGovernor над Store).
	Governor judge.Evaluator

	// Registry — реестр исполнителей для worker-циклов
	// (default: worker.NewRegistry()).
	Registry *worker.Registry

	// Verdicts — аудит вердиктов (опционально).
	Verdicts VerdictRecorder

	// NumWorkers — размер пула worker-циклов (default: 3).
	NumWorkers int

	// PlanInterval — интервал planning-цикла (default: 5s).
	PlanInterval time.Duration

	// PopTimeout — таймаут блокирующего Pop; границы таймаута —
	// точки проверки отмены (default: 5s).
	PopTimeout time.Duration

	// Logger — логгер (default: slog.Default()).
	Logger *slog.Logger
}

// New создаёт Coordinator.
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	decomposer := cfg.Decomposer
	if decomposer == nil {
		decomposer = planner.NewHeuristic()
	}

	baseJudge := cfg.Judge
	if baseJudge == nil {
		baseJudge = judge.NewConfidenceJudge()
	}

	governor := cfg.Governor
	if governor == nil {
		governor = judge.NewBudgetGovernor(judge.GovernorConfig{
			Base:   baseJudge,
			Store:  cfg.Store,
			Logger: logger,
		})
	}

	registry := cfg.Registry
	if registry == nil {
		registry = worker.NewRegistry()
	}

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = defaultNumWorkers
	}

	planInterval := cfg.PlanInterval
	if planInterval <= 0 {
		planInterval = defaultPlanInterval
	}

	popTimeout := cfg.PopTimeout
	if popTimeout <= 0 {
		popTimeout = defaultPopTimeout
	}

	agents := make([]*worker.Agent, numWorkers)
	for i := range agents {
		agents[i] = worker.NewAgent("", registry, logger)
	}

	return &Coordinator{
		store:        cfg.Store,
		workQueue:    cfg.WorkQueue,
		reviewQueue:  cfg.ReviewQueue,
		decomposer:   decomposer,
		judge:        baseJudge,
		governor:     governor,
		agents:       agents,
		escalations:  NewEscalationList(),
		verdicts:     cfg.Verdicts,
		planInterval: planInterval,
		popTimeout:   popTimeout,
		logger:       logger,
	}
}

// Start запускает все циклы координатора.
//
// Запускает:
//   - Planning-цикл (1)
//   - Worker-циклы (N)
//   - Judging-цикл (1)
func (c *Coordinator) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	c.logger.Info("starting coordinator",
		"workers", len(c.agents),
		"plan_interval", c.planInterval,
		"pop_timeout", c.popTimeout,
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.planLoop(ctx)
	}()

	for _, agent := range c.agents {
		agent := agent
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.workerLoop(ctx, agent)
		}()
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.judgeLoop(ctx)
	}()

	c.logger.Info("coordinator started")
	return nil
}

// Stop останавливает координатор.
//
// Флаг остановки наблюдается каждым циклом на границе таймаута Pop;
// ни одна операция не прерывается посреди выполнения.
func (c *Coordinator) Stop() {
	c.stoppedMu.Lock()
	c.stopped = true
	c.stoppedMu.Unlock()

	c.logger.Info("stopping coordinator...")

	if c.cancelFunc != nil {
		c.cancelFunc()
	}

	c.wg.Wait()

	c.logger.Info("coordinator stopped",
		"pending_escalations", c.escalations.Len(),
	)
}

// IsStopped проверяет, остановлен ли координатор.
func (c *Coordinator) IsStopped() bool {
	c.stoppedMu.RLock()
	defer c.stoppedMu.RUnlock()
	return c.stopped
}

// StartCampaign регистрирует новую кампанию в общем состоянии.
// Декомпозицию выполнит planning-цикл на следующем тике.
func (c *Coordinator) StartCampaign(ctx context.Context, campaignID, goal string) error {
	if c.IsStopped() {
		return ErrStopped
	}

	campaign := &domain.Campaign{
		ID:        campaignID,
		Goal:      goal,
		Status:    domain.CampaignStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	err := c.store.Update(ctx, actorID, func(st *state.CoordinationState) error {
		if _, exists := st.ActiveCampaigns[campaignID]; exists {
			return ErrCampaignExists
		}
		st.ActiveCampaigns[campaignID] = campaign
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("campaign started", "campaign_id", campaignID, "goal", goal)
	return nil
}

// PendingEscalations возвращает записи, ожидающие решения человека.
func (c *Coordinator) PendingEscalations() []*domain.WorkResult {
	return c.escalations.Pending()
}

// ApproveEscalation принимает запаркованный результат.
//
// Для результата с транзакцией расход резервируется в Store до
// возврата: человеческое одобрение подчиняется тому же инварианту,
// что и автоматическое. Повторный вызов по тому же ID — ErrNotFound.
func (c *Coordinator) ApproveEscalation(ctx context.Context, id uuid.UUID) error {
	entry, err := c.escalations.Take(id)
	if err != nil {
		return err
	}

	if tx := entry.Transaction(); tx != nil {
		var total float64
		err := c.store.Update(ctx, "hitl", func(st *state.CoordinationState) error {
			st.DailySpend[tx.Currency] += tx.Amount
			total = st.DailySpend[tx.Currency]
			return nil
		})
		if err != nil {
			// Резервирование не удалось — вернуть запись в список,
			// чтобы решение можно было повторить.
			c.escalations.Add(entry)
			return err
		}
		telemetry.DailySpend.WithLabelValues(tx.Currency).Set(total)
	}

	c.commitApproval(ctx, entry)

	c.logger.Info("escalation approved", "work_item_id", id)
	return nil
}

// RejectEscalation отклоняет запаркованный результат.
// Повторный вызов по тому же ID — ErrNotFound.
func (c *Coordinator) RejectEscalation(ctx context.Context, id uuid.UUID) error {
	entry, err := c.escalations.Take(id)
	if err != nil {
		return err
	}

	c.recordRejection(ctx, entry)

	c.logger.Info("escalation rejected", "work_item_id", id)
	return nil
}
