package merge

import (
	"context"
	"fmt"
	"time"

	mergetree "asset-diff/core/merge"
	"asset-diff/core/metrics"
	"asset-diff/core/storage"
	"asset-diff/core/tree"
	"asset-diff/feature/merge/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Merge sources.
const (
	SourceInline  = "inline"
	SourceObjects = "objects"
	SourceCLI     = "cli"
)

// Result is the outcome of one merge.
type Result struct {
	RunID     string                `json:"run_id"`
	Outcome   string                `json:"outcome"`
	Mergeable bool                  `json:"mergeable"`
	Summary   mergetree.PlanSummary `json:"summary"`
	Actions   []mergetree.Action    `json:"actions"`
	Tree      *mergetree.Node       `json:"tree,omitempty" swaggertype:"object"`
}

// Service computes merges and keeps their history.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	store  *Store
	cache  *documentCache
	cfg    Config
}

// NewService creates a new merge service. db may be nil, in which case runs
// are not recorded.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Service {
	s := &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		cache:  newDocumentCache(cfg.CacheTTL()),
		cfg:    cfg,
	}
	if db != nil && cfg.HistoryEnabled {
		s.store = NewStore(db)
	}
	return s
}

// HistoryEnabled reports whether runs are recorded.
func (s *Service) HistoryEnabled() bool {
	return s.store != nil
}

// Migrate prepares the history table. It is a no-op without history.
func (s *Service) Migrate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Migrate(ctx)
}

// Merge diffs three inline documents.
func (s *Service) Merge(ctx context.Context, docs Documents) (*Result, error) {
	base, err := parseRaw("base", docs.Base, s.cfg.MaxDocumentBytes)
	if err != nil {
		return nil, err
	}
	side1, err := parseRaw("side1", docs.Side1, s.cfg.MaxDocumentBytes)
	if err != nil {
		return nil, err
	}
	side2, err := parseRaw("side2", docs.Side2, s.cfg.MaxDocumentBytes)
	if err != nil {
		return nil, err
	}

	refs := Refs{Base: SourceInline, Side1: SourceInline, Side2: SourceInline}
	return s.MergeTrees(ctx, SourceInline, refs, base, side1, side2)
}

// MergeObjects diffs three documents loaded from the bucket. The result is
// written back to the bucket when keys.Output is set.
func (s *Service) MergeObjects(ctx context.Context, keys ObjectKeys) (*Result, error) {
	var nodes [3]*tree.Node
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range [...]string{keys.Base, keys.Side1, keys.Side2} {
		if key == "" {
			continue
		}
		g.Go(func() error {
			n, err := s.LoadDocument(gctx, key)
			if err != nil {
				return err
			}
			nodes[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	refs := Refs{Base: keys.Base, Side1: keys.Side1, Side2: keys.Side2}
	result, err := s.MergeTrees(ctx, SourceObjects, refs, nodes[0], nodes[1], nodes[2])
	if err != nil {
		return nil, err
	}

	if keys.Output != "" {
		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		if err := storage.WriteObject(ctx, s.client, s.bucket, keys.Output, data, "application/json"); err != nil {
			return nil, err
		}
		s.logger.Info("Merge result stored", zap.String("run_id", result.RunID), zap.String("key", keys.Output))
	}
	return result, nil
}

// LoadDocument returns the parsed document stored under key, using the cache.
func (s *Service) LoadDocument(ctx context.Context, key string) (*tree.Node, error) {
	n, hit, err := s.cache.Get(ctx, key, func(ctx context.Context) (*tree.Node, error) {
		data, err := storage.ReadObject(ctx, s.client, s.bucket, key, s.cfg.MaxDocumentBytes)
		if err != nil {
			return nil, err
		}
		n, err := ParseDocument(data, s.cfg.MaxDocumentBytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveCache(hit)
	return n, nil
}

// ListDocuments returns the document keys under prefix.
func (s *Service) ListDocuments(ctx context.Context, prefix string) ([]string, error) {
	return storage.ListKeys(ctx, s.client, s.bucket, prefix)
}

// MergeTrees diffs three trees, records the run and returns its result.
func (s *Service) MergeTrees(ctx context.Context, source string, refs Refs, base, side1, side2 *tree.Node) (*Result, error) {
	start := time.Now()
	differ := mergetree.NewDiffer(base, side1, side2, s.cfg.diffOptions(mergetree.WithLogger(s.logger))...)
	root, err := differ.Compute(false)
	if err != nil {
		metrics.ObserveMerge(source, nil, 0)
		return nil, fmt.Errorf("failed to compute merge: %w", err)
	}
	plan := mergetree.BuildPlan(root)
	elapsed := time.Since(start)
	metrics.ObserveMerge(source, plan, elapsed)

	result := &Result{
		RunID:     uuid.NewString(),
		Outcome:   metrics.Outcome(plan),
		Mergeable: plan.Mergeable(),
		Summary:   plan.Summary,
		Actions:   plan.Actions,
		Tree:      root,
	}

	s.logger.Debug("Merge computed",
		zap.String("run_id", result.RunID),
		zap.String("source", source),
		zap.String("outcome", result.Outcome),
		zap.Int("differences", plan.Summary.TotalDifferences),
		zap.Duration("elapsed", elapsed),
	)

	if s.store != nil {
		run := &models.MergeRun{
			ID:             result.RunID,
			Source:         source,
			BaseRef:        refs.Base,
			Side1Ref:       refs.Side1,
			Side2Ref:       refs.Side2,
			Outcome:        result.Outcome,
			Differences:    plan.Summary.TotalDifferences,
			Unresolved:     plan.Summary.Unresolved(),
			DurationMicros: elapsed.Microseconds(),
		}
		if err := run.SetPlan(plan); err != nil {
			return nil, fmt.Errorf("failed to encode plan: %w", err)
		}
		// A failed save does not fail the merge.
		if err := s.store.Save(ctx, run); err != nil {
			s.logger.Warn("Failed to record merge run", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	return result, nil
}

// History returns the most recent runs.
func (s *Service) History(ctx context.Context, limit int) ([]models.MergeRun, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, limit)
}

// Run returns one recorded run.
func (s *Service) Run(ctx context.Context, id string) (*models.MergeRun, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.Get(ctx, id)
}
