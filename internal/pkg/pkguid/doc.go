// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - String IDs (UUIDs: correlation IDs, blob keys, event IDs).
//   - Numeric IDs (Snowflake: analysis record IDs, monotonic per node).
package pkguid
