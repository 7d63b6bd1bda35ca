package checks

import (
	"context"
	"fmt"

	"asset-diff/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of a database schema check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// Tabler is a GORM model with an explicit table name.
type Tabler interface {
	TableName() string
}

// CheckSchema pings db and verifies that every model's table has the columns
// GORM maps the model to.
func CheckSchema(ctx context.Context, db *gorm.DB, models ...Tabler) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	conn := db.WithContext(ctx)
	for _, model := range models {
		table := model.TableName()

		expected, err := database.ModelColumns(conn, model)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to parse model for %s: %v", table, err))
			report.Matched = false
			continue
		}

		missing, err := database.MissingColumns(conn, table, expected...)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tbl.MissingColumns = missing
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
