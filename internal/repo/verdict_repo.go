package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Chimera/internal/domain"
)

// VerdictRepo — аудиторский журнал вынесенных вердиктов.
type VerdictRepo struct {
	pool *pgxpool.Pool
}

// NewVerdictRepo создаёт новый VerdictRepo.
func NewVerdictRepo(pool *pgxpool.Pool) *VerdictRepo {
	return &VerdictRepo{pool: pool}
}

// VerdictRecord — одна запись аудиторского журнала.
type VerdictRecord struct {
	WorkItemID string          `json:"work_item_id"`
	CampaignID string          `json:"campaign_id"`
	WorkerID   string          `json:"worker_id"`
	Verdict    domain.Verdict  `json:"verdict"`
	Reason     string          `json:"reason"`
	Confidence float64         `json:"confidence"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// RecordVerdict сохраняет вердикт по результату работы.
func (r *VerdictRepo) RecordVerdict(ctx context.Context, result *domain.WorkResult, decision domain.Decision) error {
	outputJSON, err := json.Marshal(result.Output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	query := `
		INSERT INTO verdicts (work_item_id, campaign_id, worker_id, verdict, reason, confidence, output, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		result.WorkItemID.String(),
		result.CampaignID,
		result.WorkerID,
		decision.Verdict,
		decision.Reason,
		result.ConfidenceScore,
		outputJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}
	return nil
}

// ListByCampaign возвращает вердикты кампании, новые первыми.
func (r *VerdictRepo) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]VerdictRecord, error) {
	query := `
		SELECT work_item_id, campaign_id, worker_id, verdict, reason, confidence, recorded_at
		FROM verdicts
		WHERE campaign_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	defer rows.Close()

	var records []VerdictRecord
	for rows.Next() {
		var rec VerdictRecord
		err := rows.Scan(
			&rec.WorkItemID,
			&rec.CampaignID,
			&rec.WorkerID,
			&rec.Verdict,
			&rec.Reason,
			&rec.Confidence,
			&rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
