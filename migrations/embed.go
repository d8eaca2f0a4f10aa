// Package migrations holds the goose SQL migrations for the vocabulary schema.
package migrations

import "embed"

// FS contains every *.sql migration, applied in version order by goose.
//
//go:embed *.sql
var FS embed.FS
