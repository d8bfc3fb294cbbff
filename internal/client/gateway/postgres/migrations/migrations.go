// Package migrations embeds the goose migrations of the blog backend schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
