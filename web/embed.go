package web

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var distEmbed embed.FS

// DistFS holds the browser chat client, rooted at dist/.
var DistFS, _ = fs.Sub(distEmbed, "dist")
