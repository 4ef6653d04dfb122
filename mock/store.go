package mock

import "github.com/apidex/apidex"

var _ apidex.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of apidex.DocumentStore.
type DocumentStore struct {
	ReadDocumentFn  func(name string) ([]byte, error)
	WriteDocumentFn func(name string, data []byte) error
	DocumentHashFn  func(name string) (string, error)
}

func (s *DocumentStore) ReadDocument(name string) ([]byte, error) {
	return s.ReadDocumentFn(name)
}

func (s *DocumentStore) WriteDocument(name string, data []byte) error {
	return s.WriteDocumentFn(name, data)
}

func (s *DocumentStore) DocumentHash(name string) (string, error) {
	return s.DocumentHashFn(name)
}
