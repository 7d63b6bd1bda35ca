package integrity

import (
	"context"
	"errors"

	"asset-diff/core/storage"
	"asset-diff/feature/integrity/checks"
	"asset-diff/feature/merge/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by the database check when no database is configured.
var ErrNoDatabase = errors.New("no database configured")

// Service checks the dependencies merges rely on.
type Service struct {
	client   storage.Client
	bucket   string
	prefixes []string
	logger   *zap.Logger
	db       *gorm.DB
}

// NewService creates a new integrity service. prefixes are the bucket
// prefixes expected to hold documents.
func NewService(client storage.Client, bucket string, prefixes []string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		prefixes: prefixes,
		logger:   logger,
		db:       db,
	}
}

// CheckStorage reports on the document bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefixes)
}

// CheckDatabase reports on the merge history schema.
func (s *Service) CheckDatabase(ctx context.Context) (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(ctx, s.db, &models.MergeRun{})
}
