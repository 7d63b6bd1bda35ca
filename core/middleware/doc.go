// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation on the X-API-Key header. Disabled when no key is configured.
//   - rayid: Assigns every request a RayID, stored in the context locals and echoed
//     in the X-Ray-ID response header for tracing.
//
// Register rayid first so that every later log line carries the id.
package middleware
