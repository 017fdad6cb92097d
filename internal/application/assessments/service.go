package assessments

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/autolens/damage-api/internal/application"
	"github.com/autolens/damage-api/internal/domain/ai"
	domain "github.com/autolens/damage-api/internal/domain/assessment"
)

// Service implements the assessment use-cases.
// Safe for concurrent use; all shared state lives behind the ports.
type Service struct {
	Repo   domain.Repository
	Images domain.ImageStore
	Model  ai.Client
	Clock  application.Clock
}

// Analyze runs the full pipeline for one uploaded image: store the
// bytes, ask the model, normalize whatever comes back, persist the
// record. Normalization itself cannot fail; only collaborator errors
// come back, and nothing is persisted when one does.
func (s *Service) Analyze(ctx context.Context, image []byte, filename string) (domain.Analysis, error) {
	key := objectKey(filename)

	url, err := s.Images.Store(ctx, key, image)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("store image: %w", err)
	}

	text, err := s.Model.Assess(ctx, image)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("assess image: %w", err)
	}

	analysis := domain.Normalize(domain.DecodeModelOutput(text))
	analysis.ImageURL = url

	if err := s.Repo.Save(ctx, analysis.Record(s.Clock.Now())); err != nil {
		return domain.Analysis{}, fmt.Errorf("save assessment: %w", err)
	}

	return analysis, nil
}

// History returns all persisted assessments, newest first.
func (s *Service) History(ctx context.Context) ([]*domain.Assessment, error) {
	return s.Repo.ListAll(ctx)
}

// objectKey builds a collision-free storage key, keeping the upload's
// extension when it has one.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	return uuid.New().String() + ext
}
