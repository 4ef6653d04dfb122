// Package slog provides logging decorators for apidex interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/apidex/apidex"
)

// Ensure LoggingIndex implements apidex.Index.
var _ apidex.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with query logging.
type LoggingIndex struct {
	next   apidex.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next apidex.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// AddEndpoint delegates to the wrapped index.
func (l *LoggingIndex) AddEndpoint(e *apidex.Endpoint) {
	l.next.AddEndpoint(e)
}

// Search delegates to the wrapped index and logs the query.
func (l *LoggingIndex) Search(query string, opts apidex.SearchOptions) (results []*apidex.Endpoint) {
	defer func(begin time.Time) {
		l.logger.Info("search",
			"query", query,
			"api", opts.API,
			"method", opts.Method,
			"results", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return l.next.Search(query, opts)
}

// Endpoint delegates to the wrapped index and logs misses.
func (l *LoggingIndex) Endpoint(apiName, path, method string) (*apidex.Endpoint, error) {
	e, err := l.next.Endpoint(apiName, path, method)
	if err != nil {
		l.logger.Info("endpoint lookup miss",
			"api", apiName,
			"path", path,
			"method", method,
		)
	}
	return e, err
}

// APIEndpoints delegates to the wrapped index.
func (l *LoggingIndex) APIEndpoints(apiName, section string) []*apidex.Endpoint {
	return l.next.APIEndpoints(apiName, section)
}

// APIs delegates to the wrapped index.
func (l *LoggingIndex) APIs() []*apidex.APIInfo {
	return l.next.APIs()
}

// Sections delegates to the wrapped index.
func (l *LoggingIndex) Sections(apiName string) []string {
	return l.next.Sections(apiName)
}

// SetAPIDescription delegates to the wrapped index.
func (l *LoggingIndex) SetAPIDescription(apiName, description string) {
	l.next.SetAPIDescription(apiName, description)
}

// Count delegates to the wrapped index.
func (l *LoggingIndex) Count() int {
	return l.next.Count()
}
