// Package assets embeds the default configuration, data tables and levels.
package assets

import "embed"

//go:embed config.yaml spells.yaml monsters.yaml levels/*.txt
var FS embed.FS
