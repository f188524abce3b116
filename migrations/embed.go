// Package migrations embebe los scripts SQL de goose.
package migrations

import "embed"

// FS contiene los archivos *.sql en orden de versión.
//
//go:embed *.sql
var FS embed.FS
