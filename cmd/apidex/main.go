package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	apidexfs "github.com/apidex/apidex/fs"
	apidexhttp "github.com/apidex/apidex/http"
	apidexslog "github.com/apidex/apidex/slog"
	"github.com/apidex/apidex/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Sources file path. Set before calling Run().
	SourcesPath string

	// Directory for fetched documents. Set before calling Run().
	DataDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		SourcesPath: defaultSourcesPath(),
		DataDir:     defaultDataDir(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("apidex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apidex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logs go to stderr; stdout carries command output and, for
	// serve, the MCP stdio transport.
	deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))

	// Load the sources configuration
	sourcesPath := m.SourcesPath
	if cli.Sources != "" {
		sourcesPath = cli.Sources
	}
	sources, err := yaml.LoadSources(sourcesPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set APIDEX_SOURCES or pass --sources to use a different sources file")
		return err
	}
	deps.Sources = sources

	// Wire the document store and fetcher into dependencies
	dataDir := m.DataDir
	if cli.Data != "" {
		dataDir = cli.Data
	}
	deps.Store = apidexfs.NewDocumentStore(dataDir)

	var fetcherOpts []apidexhttp.Option
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		fetcherOpts = append(fetcherOpts, apidexhttp.WithGitHubToken(token))
	}
	deps.Fetcher = apidexslog.NewLoggingFetcher(apidexhttp.NewFetcher(fetcherOpts...), deps.Logger)

	return kongCtx.Run(deps)
}

func defaultSourcesPath() string {
	if path := os.Getenv("APIDEX_SOURCES"); path != "" {
		return path
	}
	return "sources.yaml"
}

func defaultDataDir() string {
	if dir := os.Getenv("APIDEX_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docs"
	}
	return filepath.Join(home, ".apidex", "docs")
}
