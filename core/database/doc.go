// Package database handles database connections and schema inspection for the
// merge run history.
//
// # Connect
//
// Connect opens a GORM connection for the configured driver: MySQL for shared
// deployments, SQLite for local use (the default). The history store is optional;
// callers log and continue when the connection fails.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition, letting the
// history store decide whether its table needs migrating.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "merge_runs", "id", "outcome")
package database
