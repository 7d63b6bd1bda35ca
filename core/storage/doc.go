// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that merge documents
// can be loaded from, and merge results written to, AWS S3 or self-hosted MinIO.
// The interface makes storage easy to mock in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - ReadObject: Downloads a document, optionally enforcing a size limit.
//   - WriteObject: Uploads a merge result.
//   - ListKeys: Lists document keys under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, "documents", "base.yaml", 1<<20)
package storage
