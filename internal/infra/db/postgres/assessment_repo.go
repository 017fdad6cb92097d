package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/autolens/damage-api/internal/domain/assessment"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Save inserts an assessment record and assigns its sequence ID.
func (r *AssessmentRepository) Save(ctx context.Context, a *domain.Assessment) error {
	const q = `
INSERT INTO assessments
  (image_path, damage_type, location, cost_inr, cost_usd, cost_yen, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;
`
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	err := r.db.QueryRowContext(ctx, q,
		a.ImagePath, orUnknown(a.DamageType), a.Location,
		a.CostINR, a.CostUSD, a.CostYen,
		a.Notes, created,
	).Scan(&a.ID)
	if err != nil {
		return err
	}
	a.CreatedAt = created
	return nil
}

// ListAll returns every assessment, newest first.
func (r *AssessmentRepository) ListAll(ctx context.Context) ([]*domain.Assessment, error) {
	const q = `
SELECT id, image_path, damage_type, location, cost_inr, cost_usd, cost_yen, notes, created_at
FROM assessments
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		if err := rows.Scan(
			&a.ID, &a.ImagePath, &a.DamageType, &a.Location,
			&a.CostINR, &a.CostUSD, &a.CostYen,
			&a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
