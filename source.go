package apidex

import "context"

// SourceFormat identifies the document format of a source.
type SourceFormat string

// Supported source formats.
const (
	FormatBlueprint SourceFormat = "apib"
	FormatOpenAPI   SourceFormat = "openapi"
)

// Source describes one configured documentation source.
type Source struct {
	Name        string       `json:"name" yaml:"name"`
	URL         string       `json:"url" yaml:"url"`
	Output      string       `json:"output" yaml:"output"`
	Format      SourceFormat `json:"format" yaml:"format"`
	Description string       `json:"description" yaml:"description"`
	AuthHeader  string       `json:"auth_header" yaml:"auth_header"`
	BaseURL     string       `json:"base_url" yaml:"base_url"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	if s.Output == "" {
		return Errorf(EINVALID, "source output path required")
	}
	if s.Format != FormatBlueprint && s.Format != FormatOpenAPI {
		return Errorf(EINVALID, "source format must be %q or %q", FormatBlueprint, FormatOpenAPI)
	}
	return nil
}

// Fetcher retrieves raw documentation bytes from URLs.
type Fetcher interface {
	// Fetch downloads the document at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DocumentStore persists fetched raw documents between runs.
// It stores source documents only; the search index is never persisted.
type DocumentStore interface {
	// ReadDocument returns the stored bytes for a source's output path.
	// Returns ENOTFOUND if the document has never been stored.
	ReadDocument(name string) ([]byte, error)

	// WriteDocument stores the bytes for a source's output path,
	// creating parent directories as needed.
	WriteDocument(name string, data []byte) error

	// DocumentHash returns the content hash of the stored document.
	// Returns ENOTFOUND if the document has never been stored.
	DocumentHash(name string) (string, error)
}
