// Package utils provides small conversion helpers shared by the HTTP handlers
// and the CLI: lenient integer parsing for query and flag values, and leaf value
// formatting for text reports.
package utils
