// Package schemas holds the JSON Schemas for matcher input and output files.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
