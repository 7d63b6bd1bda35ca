package merge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mergetree "asset-diff/core/merge"
	"asset-diff/core/storage"
	"asset-diff/core/storage/mocks"
	"asset-diff/feature/merge/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, db *gorm.DB) (*fiber.App, *mocks.Client, *Service) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), db, Config{
		CacheTTLSeconds:  60,
		MaxDocumentBytes: 256,
		HistoryEnabled:   true,
	})
	require.NoError(t, svc.Migrate(context.Background()))
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient, svc
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestHandleMerge(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	status, body := post(t, app, "/merge", `{"base": {"a": 1}, "side1": {"a": 2}, "side2": {"a": 3}}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "conflict", body["outcome"])
	assert.Equal(t, false, body["mergeable"])
	assert.NotEmpty(t, body["run_id"])
	assert.NotNil(t, body["tree"])

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["conflicts"])

	actions := body["actions"].([]any)
	require.Len(t, actions, 1)
	assert.Equal(t, "manual", actions[0].(map[string]any)["type"])
}

func TestHandleMerge_NonFiniteValues(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	status, body := post(t, app, "/merge", `{"base": "v: .nan", "side1": "v: .inf", "side2": "v: .nan"}`)
	require.Equal(t, 200, status)
	assert.Equal(t, "mergeable", body["outcome"])

	items := body["tree"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "NaN", item["base"].(map[string]any)["value"])
	assert.Equal(t, "+Inf", item["side1"].(map[string]any)["value"])
}

func TestHandleMerge_NullReplacesMap(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	status, body := post(t, app, "/merge", `{"base": {"a": {"x": 1}}, "side1": {"a": null}, "side2": {"a": {"x": 1}}}`)
	require.Equal(t, 200, status)

	actions := body["actions"].([]any)
	require.Len(t, actions, 1)
	action := actions[0].(map[string]any)
	assert.Equal(t, `$["a"]`, action["path"])
	assert.Equal(t, "take_side1", action["type"])
}

func TestHandleMerge_WithoutTree(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	status, body := post(t, app, "/merge?tree=false", `{"base": "a: 1", "side1": "a: 1", "side2": "a: 1"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "clean", body["outcome"])
	assert.NotContains(t, body, "tree")
}

func TestHandleMerge_Errors(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	tests := []struct {
		name         string
		body         string
		expectStatus int
	}{
		{name: "Malformed body", body: `{"base":`, expectStatus: 400},
		{name: "Invalid YAML", body: `{"base": "a: [1"}`, expectStatus: 400},
		{name: "Too large", body: `{"side1": "` + strings.Repeat("x", 300) + `"}`, expectStatus: 413},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, "/merge", tt.body)
			assert.Equal(t, tt.expectStatus, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleMergeObjects(t *testing.T) {
	app, mockClient, _ := setupTestApp(t, nil)

	mockClient.On("GetObject", mock.Anything, "test-bucket", "base.yaml", mock.Anything).
		Return(io.NopCloser(strings.NewReader("a: 1")), nil)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "side1.yaml", mock.Anything).
		Return(io.NopCloser(strings.NewReader("a: 2")), nil)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "missing.yaml", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	status, body := post(t, app, "/merge/objects", `{"base": "base.yaml", "side1": "side1.yaml", "side2": "base.yaml"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "mergeable", body["outcome"])

	status, body = post(t, app, "/merge/objects", `{"base": "missing.yaml"}`)
	assert.Equal(t, 404, status)
	assert.Contains(t, body["error"], "missing.yaml")
}

func TestHandleListObjects(t *testing.T) {
	app, mockClient, _ := setupTestApp(t, nil)

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: "docs/a.yaml"}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "docs/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	req := httptest.NewRequest("GET", "/merge/objects?prefix=docs/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, []any{"docs/a.yaml"}, body["keys"])
}

func TestHandleHistory(t *testing.T) {
	app, _, svc := setupTestApp(t, setupSQLite(t))

	require.NoError(t, svc.store.Save(context.Background(), &models.MergeRun{
		ID: "older", Source: SourceCLI, Outcome: "clean", CreatedAt: time.Now().Add(-time.Hour),
	}))
	status, merged := post(t, app, "/merge", `{"base": [1], "side1": [1, 2], "side2": [1]}`)
	require.Equal(t, 200, status)

	req := httptest.NewRequest("GET", "/merge/history?limit=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var runs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, merged["run_id"], runs[0]["id"])

	req = httptest.NewRequest("GET", "/merge/history/"+merged["run_id"].(string), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var detail struct {
		Run  map[string]any `json:"run"`
		Plan struct {
			Actions []map[string]any `json:"actions"`
		} `json:"plan"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "inline", detail.Run["source"])
	require.Len(t, detail.Plan.Actions, 1)
	assert.Equal(t, "take_side1", detail.Plan.Actions[0]["type"])

	req = httptest.NewRequest("GET", "/merge/history/unknown", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleHistory_Disabled(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	req := httptest.NewRequest("GET", "/merge/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		expect int
	}{
		{err: fmt.Errorf("x: %w", ErrDocumentTooLarge), expect: 413},
		{err: fmt.Errorf("x: %w", storage.ErrObjectTooLarge), expect: 413},
		{err: fmt.Errorf("x: %w", ErrInvalidDocument), expect: 400},
		{err: fmt.Errorf("x: %w", mergetree.ErrMemberCount), expect: 422},
		{err: fmt.Errorf("x: %w", mergetree.ErrNilChild), expect: 422},
		{err: fmt.Errorf("x: %w", ErrRunNotFound), expect: 404},
		{err: fmt.Errorf("x: %w", storage.ErrObjectNotFound), expect: 404},
		{err: ErrHistoryDisabled, expect: 503},
		{err: assert.AnError, expect: 500},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expect, statusFor(tt.err))
		})
	}
}
