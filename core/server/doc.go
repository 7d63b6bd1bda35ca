// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the optional API key, the request
// body limit and whether Prometheus metrics are exposed. The start command reads
// it to build the Fiber application.
package server
