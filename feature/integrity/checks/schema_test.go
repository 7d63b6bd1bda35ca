package checks

import (
	"context"
	"testing"

	"asset-diff/core/database"
	"asset-diff/feature/merge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	// A partial table from an older release.
	require.NoError(t, db.Exec("CREATE TABLE merge_runs (id TEXT PRIMARY KEY, outcome TEXT)").Error)

	report, err := CheckSchema(ctx, db, &models.MergeRun{})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", report.Driver)
	assert.False(t, report.Matched)
	tbl := report.Tables["merge_runs"]
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "plan")
	assert.NotContains(t, tbl.MissingColumns, "outcome")

	require.NoError(t, db.AutoMigrate(&models.MergeRun{}))

	report, err = CheckSchema(ctx, db, &models.MergeRun{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["merge_runs"].Status)
	assert.Empty(t, report.Errors)
}

func TestCheckSchema_NilDB(t *testing.T) {
	_, err := CheckSchema(context.Background(), nil)
	assert.Error(t, err)
}
