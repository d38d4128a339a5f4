package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/belalnote2/InsightAssistant/internal/application"
	"github.com/belalnote2/InsightAssistant/internal/domain/ai"
	domain "github.com/belalnote2/InsightAssistant/internal/domain/analysis"
)

// ErrNoSnapshotStore is returned by ArchiveExport when no object storage
// is configured.
var ErrNoSnapshotStore = errors.New("snapshot storage not configured")

// SnapshotStore port (interface untuk penyimpanan export snapshot)
type SnapshotStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}

// Service implements use-cases untuk Analysis.
// Safe for concurrent use; it holds no mutable state of its own.
type Service struct {
	Repo      domain.Repository
	Analyzer  ai.Analyzer
	Snapshots SnapshotStore // optional
	Clock     application.Clock
}

// AnalyzeAndStore runs the analysis pipeline for one article and persists
// the outcome. The analyzer cannot fail (it degrades to the fallback), so
// any returned error is a persistence error and nothing else.
func (s *Service) AnalyzeAndStore(ctx context.Context, text string) (*domain.Analysis, error) {
	res := s.Analyzer.Analyze(ctx, text)

	entry := &domain.Analysis{
		OriginalText: text,
		Summary:      res.Summary,
		Persons:      res.Persons.Join(),
		Category:     res.Category,
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	return entry, nil
}

// Latest returns the N most recent analyses (default 10)
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

// Export returns every stored analysis for bulk download
func (s *Service) Export(ctx context.Context) ([]*domain.Analysis, error) {
	return s.Repo.All(ctx)
}

// ArchiveExport writes the full export to a temp file and uploads it to
// object storage under a unique key. Returns the snapshot URL.
func (s *Service) ArchiveExport(ctx context.Context) (string, error) {
	if s.Snapshots == nil {
		return "", ErrNoSnapshotStore
	}

	entries, err := s.Repo.All(ctx)
	if err != nil {
		return "", err
	}
	if entries == nil {
		entries = []*domain.Analysis{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "insight-export-*.json")
	if err != nil {
		return "", err
	}
	localPath := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(localPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(localPath)
		return "", err
	}

	key := fmt.Sprintf("exports/%s.json", uuid.New().String())
	url, err := s.Snapshots.UploadAndCleanup(ctx, localPath, key)
	if err != nil {
		os.Remove(localPath)
		return "", err
	}
	return url, nil
}
