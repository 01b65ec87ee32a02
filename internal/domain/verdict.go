package domain

// Verdict — исход оценки результата судьёй.
//
// Все вердикты терминальны: повторная оценка возможна только
// для нового WorkResult.
type Verdict string

const (
	// VerdictApprove — результат принят автоматически.
	VerdictApprove Verdict = "APPROVE"

	// VerdictEscalate — результат передан человеку на решение (HITL).
	VerdictEscalate Verdict = "ESCALATE"

	// VerdictReject — результат отклонён; автоматический retry
	// не выполняется.
	VerdictReject Verdict = "REJECT"
)

// Decision — вердикт с человекочитаемой причиной.
// Эфемерный: создаётся на каждую оценку и не хранится ядром.
type Decision struct {
	Verdict Verdict `json:"verdict"`
	Reason  string  `json:"reason"`
}
