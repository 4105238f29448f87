// Package migrations embeds SQL migration files for the SQLite stores.
// The exports/ and rucksack/ subdirectories hold the schemas for the
// two database kinds; each store applies only its own set.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed exports/*.sql rucksack/*.sql
var FS embed.FS
