// Package fs stores fetched raw documentation files on disk. Only the
// source documents are persisted; the search index is always rebuilt
// in memory.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apidex/apidex"
	"github.com/cespare/xxhash/v2"
)

// Ensure DocumentStore implements apidex.DocumentStore at compile time.
var _ apidex.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps one file per source under a base directory,
// addressed by the source's relative output path.
type DocumentStore struct {
	baseDir string
}

// NewDocumentStore creates a DocumentStore rooted at baseDir.
func NewDocumentStore(baseDir string) *DocumentStore {
	return &DocumentStore{baseDir: baseDir}
}

func (s *DocumentStore) path(name string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(name))
}

// ReadDocument returns the stored bytes for a source's output path.
func (s *DocumentStore) ReadDocument(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apidex.Errorf(apidex.ENOTFOUND, "document %q not stored", name)
		}
		return nil, err
	}
	return data, nil
}

// WriteDocument stores the bytes for a source's output path, creating
// parent directories as needed.
func (s *DocumentStore) WriteDocument(name string, data []byte) error {
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DocumentHash returns the content hash of the stored document.
// Returns ENOTFOUND if the document has never been stored.
func (s *DocumentStore) DocumentHash(name string) (string, error) {
	data, err := s.ReadDocument(name)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// Hash computes the content hash used for change detection.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}
