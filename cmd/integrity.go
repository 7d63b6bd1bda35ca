package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-diff/core/config"
	"asset-diff/core/database"
	"asset-diff/core/logger"
	"asset-diff/core/storage"
	"asset-diff/feature/integrity"
	"asset-diff/feature/merge"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd checks the bucket and the history database.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage and history database",
	Long: `Checks that the document bucket exists, that the required prefixes hold documents
and that the history database has every merge_runs column. With --fix, missing
history columns are created.`,
	Args: cobra.NoArgs,
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create or update the history table when columns are missing")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Storage.RequiredPrefixes, l, db)
	failed := false

	storageReport, err := svc.CheckStorage(ctx)
	switch {
	case err != nil:
		l.Error("Storage check failed", zap.Error(err))
		failed = true
	case storageReport.Status != "ok":
		l.Warn("Storage check found problems",
			zap.String("bucket", storageReport.Bucket),
			zap.Bool("exists", storageReport.Exists),
			zap.Strings("empty_prefixes", storageReport.EmptyPrefixes),
		)
		failed = true
	default:
		l.Info("Storage check passed", zap.String("bucket", storageReport.Bucket))
	}

	schemaReport, err := svc.CheckDatabase(ctx)
	switch {
	case errors.Is(err, integrity.ErrNoDatabase):
		l.Warn("History database unavailable, skipping schema check")
	case err != nil:
		l.Error("Database check failed", zap.Error(err))
		failed = true
	case !schemaReport.Matched:
		for table, tbl := range schemaReport.Tables {
			l.Warn("Table has missing columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
		}
		if !fixFlag {
			l.Info("Run with --fix to create missing columns")
			failed = true
			break
		}
		if err := merge.NewStore(db).Migrate(ctx); err != nil {
			return err
		}
		l.Info("History table migrated")
	default:
		l.Info("Database check passed", zap.String("driver", schemaReport.Driver))
	}

	if failed {
		return errors.New("integrity check failed")
	}
	return nil
}
