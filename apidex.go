// Package apidex provides keyword search over heterogeneous API
// documentation. It parses API Blueprint and OpenAPI/Swagger documents
// into a canonical endpoint model, indexes the endpoints in memory,
// and serves queries over MCP or the CLI.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g. inmem/, apib/, openapi/, http/).
package apidex
