package merge

import (
	"time"

	mergetree "asset-diff/core/merge"
)

// Config holds configuration for the merge feature.
type Config struct {
	// CacheTTLSeconds is how long documents loaded from storage stay cached.
	// Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// MaxDocumentBytes caps the size of a single input document.
	MaxDocumentBytes int64 `mapstructure:"max_document_bytes" default:"1048576"`
	// HistoryEnabled records merge runs when a database is available.
	HistoryEnabled bool `mapstructure:"history_enabled" default:"true"`
	// ReportRemovals adds a node for every list item a side dropped.
	ReportRemovals bool `mapstructure:"report_removals" default:"false"`
}

// diffOptions returns the engine options for this configuration.
func (c Config) diffOptions(opts ...mergetree.Option) []mergetree.Option {
	if c.ReportRemovals {
		opts = append(opts, mergetree.WithRemovals())
	}
	return opts
}

// CacheTTL returns the document cache time-to-live.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
