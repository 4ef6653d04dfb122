package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourcesYAML = `sources:
  - name: storage
    url: https://raw.githubusercontent.com/keboola/storage-api/main/storage.apib
    output: storage.apib
    format: apib
    description: Component and bucket storage.
    auth_header: X-StorageApi-Token
    base_url: https://connection.keboola.com
  - name: queue
    url: https://example.com/queue/openapi.yaml
    output: queue/openapi.yaml
    format: openapi
`

func TestParseSources(t *testing.T) {
	t.Parallel()

	t.Run("parses all source fields", func(t *testing.T) {
		t.Parallel()

		sources, err := yaml.ParseSources([]byte(sourcesYAML))

		require.NoError(t, err)
		require.Len(t, sources, 2)

		storage := sources[0]
		assert.Equal(t, "storage", storage.Name)
		assert.Equal(t, "storage.apib", storage.Output)
		assert.Equal(t, apidex.FormatBlueprint, storage.Format)
		assert.Equal(t, "Component and bucket storage.", storage.Description)
		assert.Equal(t, "X-StorageApi-Token", storage.AuthHeader)
		assert.Equal(t, "https://connection.keboola.com", storage.BaseURL)

		assert.Equal(t, apidex.FormatOpenAPI, sources[1].Format)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseSources([]byte("sources: ["))

		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
	})

	t.Run("rejects invalid sources", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseSources([]byte("sources:\n  - name: storage\n    format: apib\n"))

		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
	})
}

func TestLoadSources(t *testing.T) {
	t.Parallel()

	t.Run("loads sources from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sourcesYAML), 0644))

		sources, err := yaml.LoadSources(path)

		require.NoError(t, err)
		assert.Len(t, sources, 2)
	})

	t.Run("returns ENOTFOUND for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSources(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, apidex.ENOTFOUND, apidex.ErrorCode(err))
	})
}
