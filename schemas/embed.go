// Package schemas embeds the JSON Schemas that structured data descriptors are checked against.
package schemas

import "embed"

// FS holds every *.schema.json file of this directory
//
//go:embed *.schema.json
var FS embed.FS
