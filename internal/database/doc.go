// Package database provides PostgreSQL access for the items and prices tables.
//
// A Session wraps one connection opened for a single collection cycle; connections
// are not pooled or reused across cycles. Both tables are append-only: rows are
// streamed with COPY and never updated. Schema management lives outside this package.
package database
