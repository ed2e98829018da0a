// Package migrations хранит SQL-миграции goose для каждого диалекта.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
