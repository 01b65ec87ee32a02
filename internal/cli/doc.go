// Package cli реализует инструмент командной строки Chimera.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Chimera API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для запуска кампаний, разбора эскалаций и
// управления бюджетом.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Chimera API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	campaigns, err := client.ListCampaigns()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON с отступами — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: chimera campaign list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - campaign: list, start, show, verdicts
//   - escalation: list, approve, reject
//   - budget: show, set-limit
//   - fleet
//
// Каждая группа создаётся через фабричную функцию (NewCampaignCmd и
// т.д.), принимающую clientFn и outputFn — замыкания для ленивого
// создания Client и Output после парсинга PersistentFlags.
package cli
