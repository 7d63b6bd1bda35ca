package merge_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"asset-diff/core/database"
	mergetree "asset-diff/core/merge"
	"asset-diff/core/storage"
	"asset-diff/core/storage/mocks"
	"asset-diff/feature/merge"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() merge.Config {
	return merge.Config{CacheTTLSeconds: 60, MaxDocumentBytes: 1 << 16, HistoryEnabled: true}
}

func newHistoryDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func expectObject(client *mocks.Client, key, content string) {
	client.On("GetObject", mock.Anything, "documents", key, mock.Anything).
		Return(io.NopCloser(strings.NewReader(content)), nil).Once()
}

func TestService_Merge(t *testing.T) {
	ctx := context.Background()
	svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), newHistoryDB(t), testConfig())
	require.NoError(t, svc.Migrate(ctx))
	assert.True(t, svc.HistoryEnabled())

	result, err := svc.Merge(ctx, merge.Documents{
		Base:  json.RawMessage(`{"name": "stone", "scale": 1}`),
		Side1: json.RawMessage(`"name: rock\nscale: 1\n"`),
		Side2: json.RawMessage(`{"name": "stone", "scale": 2}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "mergeable", result.Outcome)
	assert.True(t, result.Mergeable)
	assert.Equal(t, 2, result.Summary.TotalDifferences)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, mergetree.ActionTakeSide1, result.Actions[0].Type)
	assert.Equal(t, mergetree.ActionTakeSide2, result.Actions[1].Type)
	require.NotNil(t, result.Tree)
	assert.Equal(t, mergetree.HasChangedChildren, result.Tree.Kind)

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.RunID, runs[0].ID)
	assert.Equal(t, merge.SourceInline, runs[0].Source)
	assert.Equal(t, 2, runs[0].Differences)

	run, err := svc.Run(ctx, result.RunID)
	require.NoError(t, err)
	plan, err := run.DecodePlan()
	require.NoError(t, err)
	assert.Equal(t, result.Actions, plan.Actions)
}

func TestService_MergeConflict(t *testing.T) {
	svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), nil, testConfig())

	result, err := svc.Merge(context.Background(), merge.Documents{
		Base:  json.RawMessage(`[1]`),
		Side1: json.RawMessage(`[2]`),
		Side2: json.RawMessage(`[3]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "conflict", result.Outcome)
	assert.False(t, result.Mergeable)
	assert.Equal(t, 1, result.Summary.Unresolved())
}

func TestService_ReportRemovals(t *testing.T) {
	docs := merge.Documents{
		Base:  json.RawMessage(`["a", "b", "c"]`),
		Side1: json.RawMessage(`["a", "c"]`),
		Side2: json.RawMessage(`["a", "b", "c"]`),
	}

	t.Run("Disabled", func(t *testing.T) {
		svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), nil, testConfig())
		result, err := svc.Merge(context.Background(), docs)
		require.NoError(t, err)
		assert.Equal(t, "clean", result.Outcome)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.ReportRemovals = true
		svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), nil, cfg)

		result, err := svc.Merge(context.Background(), docs)
		require.NoError(t, err)
		assert.Equal(t, "mergeable", result.Outcome)
		require.Len(t, result.Actions, 1)
		assert.Equal(t, mergetree.ActionTakeSide1, result.Actions[0].Type)
	})
}

func TestService_MergeAbsentSide(t *testing.T) {
	svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), nil, testConfig())

	result, err := svc.Merge(context.Background(), merge.Documents{
		Side1: json.RawMessage(`{"a": 1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.ChangedBySide1)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, `$["a"]`, result.Actions[0].Path)
}

func TestService_MergeInvalid(t *testing.T) {
	svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), nil, testConfig())

	_, err := svc.Merge(context.Background(), merge.Documents{Side2: json.RawMessage(`"a: [1"`)})
	assert.ErrorIs(t, err, merge.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "side2")
}

func TestService_MergeObjects(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	svc := merge.NewService(client, "documents", zap.NewNop(), nil, testConfig())

	expectObject(client, "base.yaml", "tags: [a, b]\n")
	expectObject(client, "side1.yaml", "tags: [a, x, b]\n")
	expectObject(client, "side2.yaml", "tags: [a, b, y]\n")

	var stored []byte
	client.On("PutObject", mock.Anything, "documents", "out/result.json", mock.Anything, mock.Anything,
		minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil).Once()

	keys := merge.ObjectKeys{Base: "base.yaml", Side1: "side1.yaml", Side2: "side2.yaml", Output: "out/result.json"}
	result, err := svc.MergeObjects(ctx, keys)
	require.NoError(t, err)
	assert.Equal(t, "mergeable", result.Outcome)
	assert.Equal(t, 2, result.Summary.TotalDifferences)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stored, &decoded))
	assert.Equal(t, result.RunID, decoded["run_id"])

	// The second merge is served from the cache.
	keys.Output = ""
	_, err = svc.MergeObjects(ctx, keys)
	require.NoError(t, err)

	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "GetObject", 3)
}

func TestService_MergeObjectsErrors(t *testing.T) {
	t.Run("Missing object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "documents", "gone.yaml", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		svc := merge.NewService(client, "documents", zap.NewNop(), nil, testConfig())
		_, err := svc.MergeObjects(context.Background(), merge.ObjectKeys{Base: "gone.yaml"})
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Too large", func(t *testing.T) {
		client := new(mocks.Client)
		expectObject(client, "big.yaml", strings.Repeat("a", 64))

		cfg := testConfig()
		cfg.MaxDocumentBytes = 16
		svc := merge.NewService(client, "documents", zap.NewNop(), nil, cfg)
		_, err := svc.MergeObjects(context.Background(), merge.ObjectKeys{Side1: "big.yaml"})
		assert.ErrorIs(t, err, storage.ErrObjectTooLarge)
	})

	t.Run("Write failure", func(t *testing.T) {
		client := new(mocks.Client)
		expectObject(client, "a.yaml", "a: 1")
		client.On("PutObject", mock.Anything, "documents", "out.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		svc := merge.NewService(client, "documents", zap.NewNop(), nil, testConfig())
		_, err := svc.MergeObjects(context.Background(), merge.ObjectKeys{Base: "a.yaml", Output: "out.json"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_ListDocuments(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "docs/b.yaml"}
	ch <- minio.ObjectInfo{Key: "docs/a.yaml"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "documents", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	svc := merge.NewService(client, "documents", zap.NewNop(), nil, testConfig())
	keys, err := svc.ListDocuments(context.Background(), "docs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.yaml", "docs/b.yaml"}, keys)
}

func TestService_HistoryDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.HistoryEnabled = false
	svc := merge.NewService(new(mocks.Client), "documents", zap.NewNop(), newHistoryDB(t), cfg)

	assert.False(t, svc.HistoryEnabled())
	assert.NoError(t, svc.Migrate(context.Background()))

	_, err := svc.History(context.Background(), 10)
	assert.ErrorIs(t, err, merge.ErrHistoryDisabled)
	_, err = svc.Run(context.Background(), "x")
	assert.ErrorIs(t, err, merge.ErrHistoryDisabled)
}
