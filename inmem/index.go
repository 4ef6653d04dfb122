// Package inmem provides the in-memory implementation of apidex.Index:
// an inverted index from search token to endpoint keys, plus per-API
// aggregates and section groupings.
//
// Posting sets and section lists keep insertion order so queries are
// reproducible. An Index is not safe for concurrent mutation; hosts
// that refresh build a new instance and swap it in atomically.
package inmem

import (
	"slices"
	"sort"
	"strings"

	"github.com/apidex/apidex"
)

// Ensure Index implements apidex.Index at compile time.
var _ apidex.Index = (*Index)(nil)

// postingSet is an insertion-ordered set of endpoint keys.
type postingSet struct {
	keys []string
	seen map[string]struct{}
}

func (p *postingSet) add(key string) {
	if _, ok := p.seen[key]; ok {
		return
	}
	p.seen[key] = struct{}{}
	p.keys = append(p.keys, key)
}

// sectionList groups endpoint keys by section, in insertion order.
// Keys may repeat when the same endpoint is re-added.
type sectionList struct {
	names []string
	keys  map[string][]string
}

func (s *sectionList) append(section, key string) {
	if _, ok := s.keys[section]; !ok {
		s.names = append(s.names, section)
	}
	s.keys[section] = append(s.keys[section], key)
}

// Index is an inverted index over endpoints.
type Index struct {
	endpoints map[string]*apidex.Endpoint
	inverted  map[string]*postingSet
	apiInfo   map[string]*apidex.APIInfo
	apiNames  []string
	sections  map[string]*sectionList
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		endpoints: make(map[string]*apidex.Endpoint),
		inverted:  make(map[string]*postingSet),
		apiInfo:   make(map[string]*apidex.APIInfo),
		sections:  make(map[string]*sectionList),
	}
}

// AddEndpoint indexes an endpoint. Re-adding a key overwrites the
// stored endpoint, but postings are additive: entries from an
// overwritten endpoint's old token set are not removed, and the API's
// endpoint count increments once per call. This index staleness is an
// accepted property of incremental updates.
func (idx *Index) AddEndpoint(e *apidex.Endpoint) {
	key := e.Key()
	idx.endpoints[key] = e

	for _, token := range apidex.Tokenize(e.SearchableText()) {
		posting, ok := idx.inverted[token]
		if !ok {
			posting = &postingSet{seen: make(map[string]struct{})}
			idx.inverted[token] = posting
		}
		posting.add(key)
	}

	sections, ok := idx.sections[e.APIName]
	if !ok {
		sections = &sectionList{keys: make(map[string][]string)}
		idx.sections[e.APIName] = sections
	}
	sections.append(e.Section, key)

	info, ok := idx.apiInfo[e.APIName]
	if !ok {
		// Base URL and auth header come from the first endpoint seen
		// for the API; later endpoints do not overwrite them.
		info = &apidex.APIInfo{
			Name:       e.APIName,
			BaseURL:    e.BaseURL,
			AuthHeader: e.AuthHeader,
		}
		idx.apiInfo[e.APIName] = info
		idx.apiNames = append(idx.apiNames, e.APIName)
	}
	info.EndpointCount++
	if !slices.Contains(info.Sections, e.Section) {
		info.Sections = append(info.Sections, e.Section)
	}
}

// Search tokenizes the query and scores endpoints from the matching
// posting sets. Each matching token contributes a base score of 1.0,
// boosted when the token appears as a substring of the endpoint's path
// (+2.0), summary (+1.5), or section (+1.0); scores across tokens sum.
// Results are sorted by descending score with ties in encounter order.
func (idx *Index) Search(query string, opts apidex.SearchOptions) []*apidex.Endpoint {
	tokens := apidex.Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = apidex.DefaultSearchLimit
	}

	apiFilter := strings.ToLower(opts.API)
	methodFilter := strings.ToUpper(opts.Method)

	scores := make(map[string]float64)
	var order []string

	for _, token := range tokens {
		posting, ok := idx.inverted[token]
		if !ok {
			continue
		}

		for _, key := range posting.keys {
			e := idx.endpoints[key]

			if apiFilter != "" && !strings.Contains(strings.ToLower(e.APIName), apiFilter) {
				continue
			}
			if methodFilter != "" && e.Method != methodFilter {
				continue
			}

			score := 1.0
			if strings.Contains(strings.ToLower(e.Path), token) {
				score += 2.0
			}
			if strings.Contains(strings.ToLower(e.Summary), token) {
				score += 1.5
			}
			if strings.Contains(strings.ToLower(e.Section), token) {
				score += 1.0
			}

			if _, ok := scores[key]; !ok {
				order = append(order, key)
			}
			scores[key] += score
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	results := make([]*apidex.Endpoint, len(order))
	for i, key := range order {
		results[i] = idx.endpoints[key]
	}
	return results
}

// Endpoint returns the endpoint with the exact key apiName:METHOD:path.
func (idx *Index) Endpoint(apiName, path, method string) (*apidex.Endpoint, error) {
	key := apiName + ":" + strings.ToUpper(method) + ":" + path
	e, ok := idx.endpoints[key]
	if !ok {
		return nil, apidex.Errorf(apidex.ENOTFOUND, "endpoint %q not found", key)
	}
	return e, nil
}

// APIEndpoints returns an API's endpoints in section-then-insertion
// order. A non-empty section restricts results to the first section
// name containing it case-insensitively; no match yields nil.
func (idx *Index) APIEndpoints(apiName, section string) []*apidex.Endpoint {
	sections, ok := idx.sections[apiName]
	if !ok {
		return nil
	}

	var keys []string
	if section != "" {
		want := strings.ToLower(section)
		for _, name := range sections.names {
			if strings.Contains(strings.ToLower(name), want) {
				keys = sections.keys[name]
				break
			}
		}
		if keys == nil {
			return nil
		}
	} else {
		for _, name := range sections.names {
			keys = append(keys, sections.keys[name]...)
		}
	}

	var results []*apidex.Endpoint
	for _, key := range keys {
		if e, ok := idx.endpoints[key]; ok {
			results = append(results, e)
		}
	}
	return results
}

// APIs returns every indexed API's aggregate info in first-seen order.
func (idx *Index) APIs() []*apidex.APIInfo {
	infos := make([]*apidex.APIInfo, len(idx.apiNames))
	for i, name := range idx.apiNames {
		infos[i] = idx.apiInfo[name]
	}
	return infos
}

// Sections returns an API's section names in first-seen order.
func (idx *Index) Sections(apiName string) []string {
	sections, ok := idx.sections[apiName]
	if !ok {
		return nil
	}
	return sections.names
}

// SetAPIDescription sets the description on an API's aggregate info.
func (idx *Index) SetAPIDescription(apiName, description string) {
	if info, ok := idx.apiInfo[apiName]; ok {
		info.Description = description
	}
}

// Count returns the number of distinct endpoint keys held.
func (idx *Index) Count() int {
	return len(idx.endpoints)
}
