// Package model defines shared data types used across the Grand Exchange collector.
//
// Conventions:
//   - Prices: integer coins, already expanded from suffix notation (1.2k -> 1200)
//   - Dates: time.Time truncated to the calendar day in the collector's local zone
//   - IDs: int64 item IDs as issued by the item database
package model
