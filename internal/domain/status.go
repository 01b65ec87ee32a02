package domain

// WorkItemStatus — статус единицы работы.
//
// Жизненный цикл:
//
//	PENDING → PROCESSING → REVIEW → COMPLETE
//	                              ↘ FAILED
type WorkItemStatus string

const (
	// WorkItemStatusPending — item создан планировщиком, ожидает воркера.
	WorkItemStatusPending WorkItemStatus = "PENDING"

	// WorkItemStatusProcessing — item выполняется воркером.
	WorkItemStatusProcessing WorkItemStatus = "PROCESSING"

	// WorkItemStatusReview — результат отправлен на оценку судье.
	WorkItemStatusReview WorkItemStatus = "REVIEW"

	// WorkItemStatusComplete — результат принят.
	WorkItemStatusComplete WorkItemStatus = "COMPLETE"

	// WorkItemStatusFailed — выполнение завершилось ошибкой.
	WorkItemStatusFailed WorkItemStatus = "FAILED"
)

// ResultStatus — статус результата выполнения.
type ResultStatus string

const (
	// ResultStatusSuccess — воркер выполнил item без ошибок.
	ResultStatusSuccess ResultStatus = "success"

	// ResultStatusFailed — выполнение упало; ошибка нормализована
	// в результат, а не проброшена через границу цикла воркера.
	ResultStatusFailed ResultStatus = "failed"
)

// CampaignStatus — статус кампании в общем состоянии.
type CampaignStatus string

const (
	// CampaignStatusActive — кампания активна, планировщик создаёт items.
	CampaignStatusActive CampaignStatus = "active"

	// CampaignStatusPaused — кампания приостановлена.
	CampaignStatusPaused CampaignStatus = "paused"

	// CampaignStatusCompleted — кампания завершена.
	CampaignStatusCompleted CampaignStatus = "completed"

	// CampaignStatusCancelled — кампания отменена.
	CampaignStatusCancelled CampaignStatus = "cancelled"
)
