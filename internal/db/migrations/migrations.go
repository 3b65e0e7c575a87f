package migrations

import "embed"

// FS — goose-миграции, вшитые в бинарь.
//
//go:embed *.sql
var FS embed.FS
