package schema

import (
	"embed"
)

// FS embeds the default resource schemas at build time.
//
//go:embed schemas/*.yaml
var FS embed.FS
