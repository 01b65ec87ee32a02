package api

import (
	"log/slog"

	"github.com/shaiso/Chimera/internal/coordinator"
	"github.com/shaiso/Chimera/internal/repo"
	"github.com/shaiso/Chimera/internal/state"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	coord    *coordinator.Coordinator
	store    *state.Store
	verdicts *repo.VerdictRepo
	logger   *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Coordinator *coordinator.Coordinator
	Store       *state.Store
	Verdicts    *repo.VerdictRepo // опционально; nil — аудит недоступен
	Logger      *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		coord:    cfg.Coordinator,
		store:    cfg.Store,
		verdicts: cfg.Verdicts,
		logger:   cfg.Logger,
	}
}
