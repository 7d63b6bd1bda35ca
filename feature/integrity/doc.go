// Package integrity reports whether the service's dependencies are usable.
//
// It checks two things:
//  1. Storage: the document bucket exists and each configured prefix holds at least one object.
//  2. Database: the history database answers and the merge_runs table has every mapped column.
//
// # HTTP Endpoints
//
//   - GET /integrity : Run all checks.
//   - GET /integrity/storage : Check the document bucket.
//   - GET /integrity/database : Check the history database.
package integrity
