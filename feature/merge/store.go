package merge

import (
	"context"
	"errors"
	"fmt"

	"asset-diff/core/database"
	"asset-diff/feature/merge/models"

	"gorm.io/gorm"
)

var (
	// ErrRunNotFound is returned when no merge run has the requested id.
	ErrRunNotFound = errors.New("merge run not found")

	// ErrHistoryDisabled is returned when no history store is configured.
	ErrHistoryDisabled = errors.New("merge history is disabled")
)

// Store persists merge runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a history store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history table when columns are missing.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	columns, err := database.ModelColumns(db, &models.MergeRun{})
	if err != nil {
		return err
	}
	missing, err := database.MissingColumns(db, models.MergeRun{}.TableName(), columns...)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	if err := db.AutoMigrate(&models.MergeRun{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.MergeRun{}.TableName(), err)
	}
	return nil
}

// Save records a run.
func (s *Store) Save(ctx context.Context, run *models.MergeRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save merge run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]models.MergeRun, error) {
	var runs []models.MergeRun
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merge runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*models.MergeRun, error) {
	var run models.MergeRun
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merge run %s: %w", id, err)
	}
	return &run, nil
}
