// Package config provides configuration management for asset-diff.
//
// Settings are read from environment variables, optionally seeded from a .env
// file. Defaults come from the `default` struct tags of each section and keys
// map to variables by replacing dots with underscores (merge.cache_ttl_seconds
// becomes MERGE_CACHE_TTL_SECONDS).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, metrics toggle and body limit
//   - Storage: S3/MinIO credentials and the document bucket
//   - Log: Logging level and format
//   - Database: Merge history database (sqlite or mysql)
//   - Merge: Document cache, size limit and history toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
