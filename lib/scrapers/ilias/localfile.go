package ilias

import (
	"io"
	"os"
)

// NamedLocalFile is a file on disk staged for upload, delivered to the
// portal under Name regardless of its on-disk filename.
type NamedLocalFile struct {
	Name string
	Path string
}

// Open returns a reader over the file contents for a multipart file
// part.
func (f NamedLocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
