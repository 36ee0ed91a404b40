// Package migrations embeds the ledger schema for goose.
package migrations

import "embed"

// FS holds the SQL migrations in version order.
//
//go:embed *.sql
var FS embed.FS
