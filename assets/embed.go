package assets

import (
	"embed"
	"io/fs"
)

//go:embed dictionary.txt
var FS embed.FS

// OpenDictionary opens the default word list shipped with the binary.
func OpenDictionary() (fs.File, error) {
	return FS.Open("dictionary.txt")
}
