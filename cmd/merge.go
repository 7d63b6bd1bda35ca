package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"asset-diff/core/config"
	"asset-diff/core/database"
	"asset-diff/core/logger"
	"asset-diff/core/storage"
	"asset-diff/core/tree"
	"asset-diff/core/utils"
	"asset-diff/feature/merge"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// absentSide marks a side that does not exist.
const absentSide = "-"

// errUnresolved is returned by --fail-on-conflict when differences need a manual decision.
var errUnresolved = errors.New("merge has unresolved differences")

var (
	// Flags for the merge command
	mergeFromBucket     bool
	mergeFormat         string
	mergeFailOnConflict bool
	mergeRecord         bool
	mergeShowTree       bool
	mergeRemovals       bool
)

// mergeCmd diffs three documents from disk or storage.
var mergeCmd = &cobra.Command{
	Use:   "merge <base> <side1> <side2>",
	Short: "Three-way diff of YAML or JSON documents",
	Long: `Compare a base document with two edited versions and print the merge plan.

Pass "-" for a side that does not exist.

Examples:
  # Files on disk
  merge base.yaml mine.yaml theirs.yaml

  # Objects in the configured bucket, JSON output
  merge --bucket --format json docs/base.yaml docs/a.yaml docs/b.yaml

  # Exit non-zero when a manual decision is needed (CI)
  merge --fail-on-conflict base.yaml mine.yaml theirs.yaml`,
	Args: cobra.ExactArgs(3),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeFromBucket, "bucket", false, "Read documents from the configured storage bucket")
	mergeCmd.Flags().StringVar(&mergeFormat, "format", "text", "Output format (text, json)")
	mergeCmd.Flags().BoolVar(&mergeFailOnConflict, "fail-on-conflict", false, "Exit with an error when differences need a manual decision")
	mergeCmd.Flags().BoolVar(&mergeRecord, "record", false, "Record the run in the history database")
	mergeCmd.Flags().BoolVar(&mergeShowTree, "tree", false, "Include the diff tree in JSON output")
	mergeCmd.Flags().BoolVar(&mergeRemovals, "removals", false, "Report list items dropped by one side")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeFormat != "text" && mergeFormat != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", mergeFormat)
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	var client storage.Client
	if mergeFromBucket {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	var db *gorm.DB
	if mergeRecord {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	if mergeRemovals {
		cfg.Merge.ReportRemovals = true
	}
	svc := merge.NewService(client, cfg.Storage.Bucket, l, db, cfg.Merge)
	if err := svc.Migrate(ctx); err != nil {
		return err
	}

	var sides [3]*tree.Node
	for i, ref := range args {
		if ref == absentSide {
			continue
		}
		if mergeFromBucket {
			sides[i], err = svc.LoadDocument(ctx, ref)
		} else {
			sides[i], err = readDocument(ref, cfg.Merge.MaxDocumentBytes)
		}
		if err != nil {
			return err
		}
	}

	source := merge.SourceCLI
	if mergeFromBucket {
		source = merge.SourceObjects
	}
	refs := merge.Refs{Base: args[0], Side1: args[1], Side2: args[2]}

	result, err := svc.MergeTrees(ctx, source, refs, sides[0], sides[1], sides[2])
	if err != nil {
		return err
	}
	l.Debug("Merge finished", zap.String("run_id", result.RunID), zap.String("outcome", result.Outcome))

	out := cmd.OutOrStdout()
	if mergeFormat == "json" {
		if !mergeShowTree {
			result.Tree = nil
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printMergeReport(out, result)
	}

	if mergeFailOnConflict && !result.Mergeable {
		return fmt.Errorf("%w: %d", errUnresolved, result.Summary.Unresolved())
	}
	return nil
}

func readDocument(path string, limit int64) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	n, err := merge.ParseDocument(data, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// printMergeReport writes a human-readable merge plan.
func printMergeReport(w io.Writer, result *merge.Result) {
	s := result.Summary
	fmt.Fprintf(w, "Outcome: %s (%d differences, %d unresolved)\n", result.Outcome, s.TotalDifferences, s.Unresolved())
	if s.TotalDifferences == 0 {
		return
	}
	fmt.Fprintf(w, "  side1: %d  side2: %d  both: %d  conflicts: %d  type: %d/%d  size: %d\n\n",
		s.ChangedBySide1, s.ChangedBySide2, s.ChangedByBoth, s.Conflicts, s.TypeMismatches, s.TypeConflicts, s.SizeConflicts)

	var diffs []*tree.Node
	if result.Tree != nil {
		for _, d := range result.Tree.Differences() {
			diffs = append(diffs, d.Node.Base, d.Node.Side1, d.Node.Side2)
		}
	}

	for i, action := range result.Actions {
		fmt.Fprintf(w, "[%s] %s\n    %s\n", action.Type, action.Path, action.Reason)
		if len(diffs) < 3*(i+1) {
			continue
		}
		for j, label := range [...]string{"base ", "side1", "side2"} {
			fmt.Fprintf(w, "    %s: %s\n", label, describeSide(diffs[3*i+j]))
		}
	}
}

func describeSide(n *tree.Node) string {
	switch {
	case n == nil:
		return "<absent>"
	case n.IsComparable():
		return utils.FormatValue(n.Instance, 60)
	default:
		return "<" + n.Shape().String() + ">"
	}
}
