package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/autolens/damage-api/internal/domain/assessment"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Save inserts an assessment record and assigns its auto-increment ID.
func (r *AssessmentRepository) Save(ctx context.Context, a *domain.Assessment) error {
	const q = `
INSERT INTO assessments
  (image_path, damage_type, location, cost_inr, cost_usd, cost_yen, notes, created_at)
VALUES (?,?,?,?,?,?,?,?);
`
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := r.db.ExecContext(ctx, q,
		a.ImagePath, orUnknown(a.DamageType), a.Location,
		a.CostINR, a.CostUSD, a.CostYen,
		a.Notes, created,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	a.CreatedAt = created
	return nil
}

// ListAll returns every assessment, newest first. ID breaks ties so
// records created in the same instant keep insertion order.
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
