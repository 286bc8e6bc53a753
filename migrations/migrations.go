// Package migrations embeds the goose SQL migrations for the canonical
// store schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
