package markdown

import (
	"os"
	"path/filepath"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// Writer implements the DocumentWriter port. The document is written to
// a temporary file in the destination directory and renamed into place,
// so a reader of the destination never observes a partial document.
type Writer struct{}

// NewWriter creates an atomic document writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write persists content at path in one visible operation
func (w *Writer) Write(path string, content []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".deckmd-*.tmp")
	if err != nil {
		return entities.NewDestinationError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return entities.NewDestinationError(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return entities.NewDestinationError(path, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return entities.NewDestinationError(path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return entities.NewDestinationError(path, err)
	}

	return nil
}
