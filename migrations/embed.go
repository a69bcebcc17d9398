// Package migrations holds the goose SQL schema migrations, embedded so
// the server binary can apply them at startup without a migrations
// directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
