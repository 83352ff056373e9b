package seed

import (
	"embed"
	"io/fs"
)

// bundled embeds the reference activity set shipped with the binary.
//
//go:embed activities.yaml
var bundled embed.FS

// FS returns the embedded filesystem containing the bundled seed data.
func FS() fs.FS {
	return bundled
}
