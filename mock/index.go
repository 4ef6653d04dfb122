package mock

import "github.com/apidex/apidex"

var _ apidex.Index = (*Index)(nil)

// Index is a mock implementation of apidex.Index.
type Index struct {
	AddEndpointFn       func(e *apidex.Endpoint)
	SearchFn            func(query string, opts apidex.SearchOptions) []*apidex.Endpoint
	EndpointFn          func(apiName, path, method string) (*apidex.Endpoint, error)
	APIEndpointsFn      func(apiName, section string) []*apidex.Endpoint
	APIsFn              func() []*apidex.APIInfo
	SectionsFn          func(apiName string) []string
	SetAPIDescriptionFn func(apiName, description string)
	CountFn             func() int
}

func (i *Index) AddEndpoint(e *apidex.Endpoint) {
	i.AddEndpointFn(e)
}

func (i *Index) Search(query string, opts apidex.SearchOptions) []*apidex.Endpoint {
	return i.SearchFn(query, opts)
}

func (i *Index) Endpoint(apiName, path, method string) (*apidex.Endpoint, error) {
	return i.EndpointFn(apiName, path, method)
}

func (i *Index) APIEndpoints(apiName, section string) []*apidex.Endpoint {
	return i.APIEndpointsFn(apiName, section)
}

func (i *Index) APIs() []*apidex.APIInfo {
	return i.APIsFn()
}

func (i *Index) Sections(apiName string) []string {
	return i.SectionsFn(apiName)
}

func (i *Index) SetAPIDescription(apiName, description string) {
	i.SetAPIDescriptionFn(apiName, description)
}

func (i *Index) Count() int {
	return i.CountFn()
}
