package migrations

import "embed"

// FS contains embedded SQLite migrations for ontology storage.
//
//go:embed *.sql
var FS embed.FS
