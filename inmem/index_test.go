package inmem_test

import (
	"fmt"
	"testing"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Interface(t *testing.T) {
	t.Parallel()
	var _ apidex.Index = inmem.NewIndex()
}

func newEndpoint(api, method, path string, mutate ...func(*apidex.Endpoint)) *apidex.Endpoint {
	e := &apidex.Endpoint{
		APIName: api,
		Section: "General",
		Method:  method,
		Path:    path,
	}
	for _, m := range mutate {
		m(e)
	}
	return e
}

func TestIndex_Endpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns an indexed endpoint by key", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/storage/tables"))

		e, err := idx.Endpoint("storage", "/v2/storage/tables", "GET")

		require.NoError(t, err)
		assert.Equal(t, "/v2/storage/tables", e.Path)
	})

	t.Run("uppercases the method for lookup", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/storage/tables"))

		_, err := idx.Endpoint("storage", "/v2/storage/tables", "get")

		require.NoError(t, err)
	})

	t.Run("returns ENOTFOUND for unknown keys", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()

		_, err := idx.Endpoint("storage", "/nope", "GET")

		assert.Equal(t, apidex.ENOTFOUND, apidex.ErrorCode(err))
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns nothing for an empty or stopword-only query", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/storage/tables", func(e *apidex.Endpoint) {
			e.Summary = "List tables"
		}))

		assert.Empty(t, idx.Search("", apidex.SearchOptions{}))
		assert.Empty(t, idx.Search("the api", apidex.SearchOptions{}))
	})

	t.Run("boosts path matches over description matches", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/storage/files", func(e *apidex.Endpoint) {
			e.Description = "Mentions tables in passing."
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/storage/tables", func(e *apidex.Endpoint) {
			e.Description = "Lists stored data."
		}))

		results := idx.Search("tables", apidex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, "/v2/storage/tables", results[0].Path)
		assert.Equal(t, "/v2/storage/files", results[1].Path)
	})

	t.Run("boosts summary and section matches", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/a", func(e *apidex.Endpoint) {
			e.Description = "Handles buckets."
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/b", func(e *apidex.Endpoint) {
			e.Summary = "List buckets"
			e.Section = "Buckets"
		}))

		results := idx.Search("buckets", apidex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, "/v2/b", results[0].Path)
	})

	t.Run("sums scores across query tokens", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/a", func(e *apidex.Endpoint) {
			e.Description = "Imports rows."
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/b", func(e *apidex.Endpoint) {
			e.Description = "Imports and exports rows."
		}))

		results := idx.Search("imports exports", apidex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, "/v2/b", results[0].Path)
	})

	t.Run("breaks ties in encounter order", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/a", func(e *apidex.Endpoint) {
			e.Description = "Handles workspaces."
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/b", func(e *apidex.Endpoint) {
			e.Description = "Handles workspaces."
		}))

		results := idx.Search("workspaces", apidex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, "/v2/a", results[0].Path)
		assert.Equal(t, "/v2/b", results[1].Path)
	})

	t.Run("filters by API name substring, case-insensitively", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("Storage API", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Summary = "List tables"
		}))
		idx.AddEndpoint(newEndpoint("Queue API", "GET", "/v2/jobs", func(e *apidex.Endpoint) {
			e.Summary = "List tables too"
		}))

		results := idx.Search("tables", apidex.SearchOptions{API: "storage"})

		require.Len(t, results, 1)
		assert.Equal(t, "Storage API", results[0].APIName)
	})

	t.Run("filters by HTTP method", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Summary = "List tables"
		}))
		idx.AddEndpoint(newEndpoint("storage", "POST", "/v2/tables", func(e *apidex.Endpoint) {
			e.Summary = "Create table in tables"
		}))

		results := idx.Search("tables", apidex.SearchOptions{Method: "post"})

		require.Len(t, results, 1)
		assert.Equal(t, "POST", results[0].Method)
	})

	t.Run("caps results at the default limit", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		for i := 0; i < 15; i++ {
			idx.AddEndpoint(newEndpoint("storage", "GET", fmt.Sprintf("/v2/widgets/%d", i), func(e *apidex.Endpoint) {
				e.Summary = "Widget operations"
			}))
		}

		results := idx.Search("widget", apidex.SearchOptions{})

		assert.Len(t, results, apidex.DefaultSearchLimit)
	})

	t.Run("honors an explicit limit", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		for i := 0; i < 5; i++ {
			idx.AddEndpoint(newEndpoint("storage", "GET", fmt.Sprintf("/v2/widgets/%d", i), func(e *apidex.Endpoint) {
				e.Summary = "Widget operations"
			}))
		}

		results := idx.Search("widget", apidex.SearchOptions{Limit: 2})

		assert.Len(t, results, 2)
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		for i := 0; i < 8; i++ {
			idx.AddEndpoint(newEndpoint("storage", "GET", fmt.Sprintf("/v2/things/%d", i), func(e *apidex.Endpoint) {
				e.Description = "Operates on things."
			}))
		}

		first := idx.Search("things", apidex.SearchOptions{})
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, idx.Search("things", apidex.SearchOptions{}))
		}
	})
}

func TestIndex_AddEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("re-adding a key overwrites the endpoint but keeps old postings", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Description = "Mentions snapshots."
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Description = "Revised description."
		}))

		// One distinct key, served with the latest content.
		assert.Equal(t, 1, idx.Count())
		e, err := idx.Endpoint("storage", "/v2/tables", "GET")
		require.NoError(t, err)
		assert.Equal(t, "Revised description.", e.Description)

		// The old token still resolves to the endpoint's current version.
		results := idx.Search("snapshots", apidex.SearchOptions{})
		require.Len(t, results, 1)
		assert.Equal(t, "Revised description.", results[0].Description)
	})

	t.Run("endpoint count increments once per add call", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables"))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables"))

		infos := idx.APIs()
		require.Len(t, infos, 1)
		assert.Equal(t, 2, infos[0].EndpointCount)
		assert.Equal(t, 1, idx.Count())
	})
}

func TestIndex_APIEndpoints(t *testing.T) {
	t.Parallel()

	populate := func() *inmem.Index {
		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Section = "Tables"
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/buckets", func(e *apidex.Endpoint) {
			e.Section = "Buckets"
		}))
		idx.AddEndpoint(newEndpoint("storage", "POST", "/v2/tables", func(e *apidex.Endpoint) {
			e.Section = "Tables"
		}))
		return idx
	}

	t.Run("returns all endpoints grouped by section order", func(t *testing.T) {
		t.Parallel()

		endpoints := populate().APIEndpoints("storage", "")

		require.Len(t, endpoints, 3)
		assert.Equal(t, "Tables", endpoints[0].Section)
		assert.Equal(t, "Tables", endpoints[1].Section)
		assert.Equal(t, "Buckets", endpoints[2].Section)
	})

	t.Run("matches a section by case-insensitive substring", func(t *testing.T) {
		t.Parallel()

		endpoints := populate().APIEndpoints("storage", "buck")

		require.Len(t, endpoints, 1)
		assert.Equal(t, "/v2/buckets", endpoints[0].Path)
	})

	t.Run("returns nothing when no section matches", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, populate().APIEndpoints("storage", "workspaces"))
	})

	t.Run("returns nothing for unknown APIs", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, populate().APIEndpoints("queue", ""))
	})
}

func TestIndex_APIs(t *testing.T) {
	t.Parallel()

	t.Run("aggregates per-API info in first-seen order", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
			e.Section = "Tables"
			e.BaseURL = "https://connection.keboola.com"
			e.AuthHeader = "X-StorageApi-Token"
		}))
		idx.AddEndpoint(newEndpoint("queue", "GET", "/v2/jobs", func(e *apidex.Endpoint) {
			e.Section = "Jobs"
		}))
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/buckets", func(e *apidex.Endpoint) {
			e.Section = "Buckets"
			e.BaseURL = "https://other.example.com"
		}))

		infos := idx.APIs()

		require.Len(t, infos, 2)
		assert.Equal(t, "storage", infos[0].Name)
		assert.Equal(t, "queue", infos[1].Name)

		// Base URL and auth header stick from the first endpoint seen.
		assert.Equal(t, "https://connection.keboola.com", infos[0].BaseURL)
		assert.Equal(t, "X-StorageApi-Token", infos[0].AuthHeader)
		assert.Equal(t, []string{"Tables", "Buckets"}, infos[0].Sections)
		assert.Equal(t, 2, infos[0].EndpointCount)
	})

	t.Run("SetAPIDescription updates known APIs and ignores unknown ones", func(t *testing.T) {
		t.Parallel()

		idx := inmem.NewIndex()
		idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables"))

		idx.SetAPIDescription("storage", "Component and bucket storage.")
		idx.SetAPIDescription("queue", "Ignored.")

		infos := idx.APIs()
		require.Len(t, infos, 1)
		assert.Equal(t, "Component and bucket storage.", infos[0].Description)
	})
}

func TestIndex_Sections(t *testing.T) {
	t.Parallel()

	idx := inmem.NewIndex()
	idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/tables", func(e *apidex.Endpoint) {
		e.Section = "Tables"
	}))
	idx.AddEndpoint(newEndpoint("storage", "GET", "/v2/buckets", func(e *apidex.Endpoint) {
		e.Section = "Buckets"
	}))
	idx.AddEndpoint(newEndpoint("storage", "POST", "/v2/tables", func(e *apidex.Endpoint) {
		e.Section = "Tables"
	}))

	assert.Equal(t, []string{"Tables", "Buckets"}, idx.Sections("storage"))
	assert.Empty(t, idx.Sections("queue"))
}
