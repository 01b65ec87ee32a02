// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (coordinator, store, аудит, logger)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - campaign_handler.go — обработчики для /campaigns
//   - hitl_handler.go     — обработчики для /escalations (решения человека)
//   - budget_handler.go   — обработчики для /budget
//   - fleet_handler.go    — обработчики для /fleet
//
// API предоставляет REST endpoints для запуска кампаний, разбора
// эскалаций, управления бюджетом и наблюдения за агентами.
package api
