// Package storage defines the content-root file-system abstraction.
package storage

import "github.com/harlowe/plume/internal/models"

// FileError records a per-file failure encountered while walking the content
// root. Individual unreadable files never abort a listing; the remaining
// posts still publish.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Provider is the interface for content-root file operations. All paths are
// relative to the content root.
type Provider interface {
	// List walks dir and returns metadata for every .md file. Files that
	// cannot be read are reported in the second return value and skipped.
	List(dir string) ([]models.PostMetadata, []FileError, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
