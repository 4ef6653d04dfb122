package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/apidex/apidex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Sources []apidex.Source
	Store   apidex.DocumentStore
	Fetcher apidex.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sources string `short:"s" help:"Path to the sources file ($APIDEX_SOURCES or sources.yaml)" type:"path"`
	Data    string `short:"d" help:"Directory for fetched documents ($APIDEX_DATA or ~/.apidex/docs)" type:"path"`

	Update UpdateCmd `cmd:"" help:"Fetch documentation sources and store changed documents"`
	List   ListCmd   `cmd:"" help:"List configured documentation sources"`
	Search SearchCmd `cmd:"" help:"Search indexed endpoints"`
	Serve  ServeCmd  `cmd:"" help:"Serve the index as MCP tools over stdio"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	API         string `help:"Only update sources whose name contains this substring"`
	DryRun      bool   `help:"Report what would change without writing"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	API    string `help:"Filter by API name substring"`
	Method string `help:"Filter by HTTP method"`
	Limit  int    `default:"10" help:"Maximum number of results"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
