package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/road-risk-service/internal/domain"
)

// Repository archives assessment reports. It implements pipeline.BatchLoader
// as a secondary sink and serves the HTTP query endpoint.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LoadBatch inserts each report. Inserts conflict-skip on the report ID, so
// redelivered batches are idempotent.
func (r *Repository) LoadBatch(ctx context.Context, reports []domain.AssessmentReport) error {
	for _, report := range reports {
		if err := r.InsertAssessment(ctx, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) InsertAssessment(ctx context.Context, report domain.AssessmentReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO assessments
            (id, road_name, generated_at, vehicle_class, weather, max_overall, report)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7::jsonb)
        ON CONFLICT (id) DO NOTHING
    `, report.ID, report.RoadName, report.GeneratedAt, string(report.VehicleClass), string(report.Weather), report.Stats.MaxOverall, string(body))
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	return nil
}

// ListAssessments returns archived reports, newest first, optionally filtered
// by road name.
func (r *Repository) ListAssessments(ctx context.Context, roadName string, limit int) ([]domain.AssessmentReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
        SELECT report
        FROM assessments
        WHERE ($1 = '' OR road_name = $1)
        ORDER BY generated_at DESC
        LIMIT $2
    `, roadName, limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.AssessmentReport, 0, limit)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}

		var report domain.AssessmentReport
		if err := json.Unmarshal(body, &report); err != nil {
			return nil, fmt.Errorf("decode assessment: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
