package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/autolens/damage-api/internal/domain/assessment"
)

func TestAssessmentRepositorySaveReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := &domain.Assessment{
		ImagePath:  "http://minio.local/uploads/abc.png",
		DamageType: "dent (front bumper)",
		CreatedAt:  created,
	}

	mock.ExpectQuery("INSERT INTO assessments").
		WithArgs(a.ImagePath, a.DamageType, "", 0.0, 0.0, 0.0, "", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	repo := NewAssessmentRepository(db)
	require.NoError(t, repo.Save(context.Background(), a))

	assert.Equal(t, int64(3), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "image_path", "damage_type", "location", "cost_inr", "cost_usd", "cost_yen", "notes", "created_at"}
	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "b.png", "scratch", "hood", 0.0, 40.0, 0.0, "", time.Now()))

	repo := NewAssessmentRepository(db)
	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "scratch", list[0].DamageType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
