// Package merge exposes three-way structural merges of YAML and JSON documents.
//
// Documents are either sent inline or loaded from the object store. Each merge
// runs the core/merge engine, builds a resolution plan and, when a database is
// configured, records the run so it can be listed later.
//
// # Components
//
//   - Service: Parses documents, runs the engine and records history.
//   - Store: Persists merge runs with GORM.
//   - Handler: Exposes the HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// Documents loaded from storage are cached for CacheTTLSeconds and concurrent
// loads of the same key are collapsed into one request.
//
// # HTTP Endpoints
//
//   - POST /merge : Merge inline documents.
//   - POST /merge/objects : Merge documents stored in the bucket.
//   - GET /merge/objects?prefix= : List stored documents.
//   - GET /merge/history?limit= : List recent merge runs.
//   - GET /merge/history/:id : Get one merge run and its plan.
//
// Pass tree=false to either POST endpoint to omit the diff tree from the
// response.
package merge
