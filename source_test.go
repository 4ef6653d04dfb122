package apidex_test

import (
	"testing"

	"github.com/apidex/apidex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	valid := apidex.Source{
		Name:   "storage",
		URL:    "https://example.com/storage.apib",
		Output: "storage.apib",
		Format: apidex.FormatBlueprint,
	}

	t.Run("accepts a complete blueprint source", func(t *testing.T) {
		t.Parallel()
		s := valid
		require.NoError(t, s.Validate())
	})

	t.Run("accepts an OpenAPI source", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Format = apidex.FormatOpenAPI
		require.NoError(t, s.Validate())
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Name = ""
		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(s.Validate()))
	})

	t.Run("rejects missing URL", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.URL = ""
		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(s.Validate()))
	})

	t.Run("rejects missing output path", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Output = ""
		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(s.Validate()))
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Format = "raml"
		assert.Equal(t, apidex.EINVALID, apidex.ErrorCode(s.Validate()))
	})
}
