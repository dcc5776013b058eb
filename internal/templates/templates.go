// Package templates embeds the layout and page templates rendered by the
// web handlers.
package templates

import "embed"

// Layout is the file name of the shell layout template.
const Layout = "layout.html"

//go:embed *.html
var FS embed.FS
