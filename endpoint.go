package apidex

import "strings"

// Location identifies where a parameter is carried in a request.
type Location string

// Location constants for Parameter.
const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationBody   Location = "body"
)

// ParseLocation maps a raw location string to a Location.
// Unknown values degrade to LocationQuery rather than erroring.
func ParseLocation(s string) Location {
	switch Location(strings.ToLower(s)) {
	case LocationPath, LocationQuery, LocationHeader, LocationBody:
		return Location(strings.ToLower(s))
	}
	return LocationQuery
}

// ParamType identifies the declared type of a parameter.
type ParamType string

// ParamType constants for Parameter.
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

// ParseParamType maps a raw type string to a ParamType.
// Unknown values degrade to TypeString rather than erroring.
func ParseParamType(s string) ParamType {
	switch ParamType(strings.ToLower(s)) {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject:
		return ParamType(strings.ToLower(s))
	}
	return TypeString
}

// Parameter describes a single endpoint parameter.
// Default and Example are nil when the source document declares none.
type Parameter struct {
	Name        string    `json:"name"`
	Location    Location  `json:"location"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
	Default     *string   `json:"default,omitempty"`
	Example     *string   `json:"example,omitempty"`
}

// Endpoint represents one documented HTTP operation within one API.
// Values are immutable once constructed by a parser.
type Endpoint struct {
	APIName           string         `json:"api_name"`
	Section           string         `json:"section"`
	Path              string         `json:"path"`
	Method            string         `json:"method"`
	Summary           string         `json:"summary"`
	Description       string         `json:"description,omitempty"`
	Parameters        []Parameter    `json:"parameters,omitempty"`
	RequestBodySchema map[string]any `json:"request_body_schema,omitempty"`
	RequestExample    string         `json:"request_example,omitempty"`
	ResponseExample   string         `json:"response_example,omitempty"`
	AuthHeader        string         `json:"auth_header,omitempty"`
	BaseURL           string         `json:"base_url,omitempty"`
}

// Key returns the endpoint's unique identifier within an index.
func (e *Endpoint) Key() string {
	return e.APIName + ":" + e.Method + ":" + e.Path
}

// SearchableText returns the combined text used for tokenization.
func (e *Endpoint) SearchableText() string {
	parts := []string{
		e.APIName,
		e.Section,
		e.Path,
		e.Method,
		e.Summary,
		e.Description,
	}
	for _, p := range e.Parameters {
		parts = append(parts, p.Name)
	}
	for _, p := range e.Parameters {
		parts = append(parts, p.Description)
	}
	return strings.Join(parts, " ")
}

// Validate returns an error if the endpoint contains invalid fields.
func (e *Endpoint) Validate() error {
	if e.APIName == "" {
		return Errorf(EINVALID, "endpoint API name required")
	}
	if e.Path == "" {
		return Errorf(EINVALID, "endpoint path required")
	}
	if e.Method == "" {
		return Errorf(EINVALID, "endpoint method required")
	}
	return nil
}

// APIInfo aggregates per-API information as endpoints are indexed.
// It is owned exclusively by the index that created it.
type APIInfo struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	BaseURL       string   `json:"base_url,omitempty"`
	AuthHeader    string   `json:"auth_header,omitempty"`
	Sections      []string `json:"sections"`
	EndpointCount int      `json:"endpoint_count"`
}

// DefaultSearchLimit is the result cap applied when SearchOptions.Limit
// is zero.
const DefaultSearchLimit = 10

// SearchOptions configures Index.Search behavior.
type SearchOptions struct {
	// API filters results to APIs whose name contains the value
	// (case-insensitive substring match).
	API string

	// Method filters results to a single HTTP method
	// (case-insensitive exact match).
	Method string

	// Limit caps the number of results. Zero means DefaultSearchLimit.
	Limit int
}

// Index provides keyword search and browsing over indexed endpoints.
// Implementations must keep posting sets and section lists in insertion
// order so that results are deterministic for identical input state.
// An Index must never be mutated while readers may be observing it;
// rebuild a fresh instance and swap it in instead.
type Index interface {
	// AddEndpoint indexes an endpoint. A later add with the same key
	// overwrites the stored endpoint (last write wins).
	AddEndpoint(e *Endpoint)

	// Search returns endpoints matching the query, best first.
	// An empty query returns no results.
	Search(query string, opts SearchOptions) []*Endpoint

	// Endpoint returns the endpoint with the exact key
	// apiName:METHOD:path. Returns ENOTFOUND if absent.
	Endpoint(apiName, path, method string) (*Endpoint, error)

	// APIEndpoints returns endpoints for an API in section-then-insertion
	// order. A non-empty section restricts results to the first section
	// whose name contains it case-insensitively; no match yields an
	// empty slice.
	APIEndpoints(apiName, section string) []*Endpoint

	// APIs returns the aggregate info for every indexed API in
	// first-seen order.
	APIs() []*APIInfo

	// Sections returns the section names for an API in first-seen
	// order. Unknown API names yield an empty slice.
	Sections(apiName string) []string

	// SetAPIDescription sets the description on an API's aggregate
	// info. Unknown API names are ignored.
	SetAPIDescription(apiName, description string)

	// Count returns the number of distinct endpoint keys held.
	Count() int
}
