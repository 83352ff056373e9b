// Package web embeds the static signup frontend served at /static/.
package web

import (
	"embed"
	"io/fs"
)

// staticAssets embeds the browser frontend.
// The structure is:
//   - static/index.html (signup page)
//   - static/app.js (fetches activities, submits signups)
//   - static/styles.css
//
//go:embed static
var staticAssets embed.FS

// StaticFS returns the embedded filesystem containing the frontend assets.
// Paths are rooted at "static/", matching the URL prefix they are served under.
func StaticFS() fs.FS {
	return staticAssets
}
