package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики координатора. Экспортируются на /metrics endpoint.
var (
	// WorkItemsPlannedTotal — создано work items планировщиком.
	WorkItemsPlannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chimera_work_items_planned_total",
		Help: "Work items produced by the planning loop, by kind.",
	}, []string{"kind"})

	// ResultsTotal — результаты воркеров по статусу (success/failed).
	ResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chimera_work_results_total",
		Help: "Work results produced by worker loops, by status.",
	}, []string{"status"})

	// VerdictsTotal — вердикты судей (APPROVE/ESCALATE/REJECT).
	VerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chimera_verdicts_total",
		Help: "Verdicts issued by the judging loop, by outcome.",
	}, []string{"verdict"})

	// StateCommitsTotal — успешные commits в Store.
	StateCommitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chimera_state_commits_total",
		Help: "Successful optimistic state commits.",
	})

	// StateConflictsTotal — OCC-конфликты при commit.
	StateConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chimera_state_conflicts_total",
		Help: "Optimistic concurrency conflicts detected on commit.",
	})

	// DailySpend — текущий дневной расход по валютам.
	DailySpend = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chimera_daily_spend",
		Help: "Accumulated daily spend per currency.",
	}, []string{"currency"})

	// EscalationDepth — размер списка эскалаций (HITL).
	EscalationDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chimera_escalation_queue_depth",
		Help: "Work results parked for human review.",
	})

	// MalformedPayloadsTotal — отброшенные сообщения очередей.
	MalformedPayloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chimera_malformed_payloads_total",
		Help: "Queue entries dropped because they failed to deserialize.",
	}, []string{"queue"})
)
