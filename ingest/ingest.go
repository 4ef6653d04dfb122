// Package ingest builds a search index from stored documentation
// sources. Each source's document is read, parsed with the parser for
// its format, and added to a fresh index; a broken source is reported
// and skipped so the remaining sources still get indexed.
package ingest

import (
	"log/slog"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/apib"
	"github.com/apidex/apidex/inmem"
	"github.com/apidex/apidex/openapi"
)

// Builder assembles an index from configured sources.
type Builder struct {
	Store  apidex.DocumentStore
	Logger *slog.Logger
}

// Build parses every source's stored document into a brand-new index.
// Sources whose documents are missing are skipped silently (they have
// simply never been fetched); sources that fail to decode are logged
// with their name and skipped. The returned index is fully populated
// and safe to publish to readers.
func (b *Builder) Build(sources []apidex.Source) *inmem.Index {
	index := inmem.NewIndex()

	for _, source := range sources {
		endpoints, err := b.parseSource(source)
		if err != nil {
			if apidex.ErrorCode(err) == apidex.ENOTFOUND {
				continue
			}
			if b.Logger != nil {
				b.Logger.Warn("skipping source",
					"source", source.Name,
					"err", err,
				)
			}
			continue
		}

		for _, e := range endpoints {
			index.AddEndpoint(e)
		}

		if source.Description != "" {
			index.SetAPIDescription(source.Name, source.Description)
		}
	}

	return index
}

// parseSource reads and parses one source's stored document.
func (b *Builder) parseSource(source apidex.Source) ([]*apidex.Endpoint, error) {
	data, err := b.Store.ReadDocument(source.Output)
	if err != nil {
		return nil, err
	}

	switch source.Format {
	case apidex.FormatBlueprint:
		parser := apib.NewParser(source.Name,
			apib.WithAuthHeader(source.AuthHeader),
			apib.WithBaseURL(source.BaseURL),
		)
		return parser.Parse(string(data)), nil

	case apidex.FormatOpenAPI:
		doc, err := openapi.Decode(data)
		if err != nil {
			return nil, err
		}
		parser := openapi.NewParser(source.Name,
			openapi.WithAuthHeader(source.AuthHeader),
			openapi.WithBaseURL(source.BaseURL),
		)
		return parser.Parse(doc), nil
	}

	return nil, apidex.Errorf(apidex.EINVALID, "source %s: unknown format %q", source.Name, source.Format)
}
