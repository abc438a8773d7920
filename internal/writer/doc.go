// Package writer persists fetched catalogues.
//
// Sinks:
//   - CSV files: items_<MM-DD-YYYY>.csv and prices_<MM-DD-YYYY>.csv, header on creation only
//   - PostgreSQL: items and prices tables, one connection per Persist call
//
// All sinks use append-only semantics (never update, only insert). Each sink, and
// each table, fails independently: one failure never prevents the next attempt.
package writer
