// Package openapi parses OpenAPI 3.x and Swagger 2.x documents into
// endpoint records. It operates on the generic decoded document tree
// rather than a typed spec model: references are never resolved and
// documents are never validated, so partially broken specs still yield
// the endpoints that can be read.
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/apidex/apidex"
	"gopkg.in/yaml.v3"
)

// httpMethods are the recognized operation keys under a path item.
var httpMethods = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// defaultSection is used when an operation declares no tags.
const defaultSection = "General"

// bodyContentTypes is the lookup order for request-body media types.
var bodyContentTypes = []string{"application/json", "application/x-www-form-urlencoded", "*/*"}

// exampleContentTypes is the lookup order for example extraction.
var exampleContentTypes = []string{"application/json", "*/*"}

// responseCodes is the status search order for response examples.
var responseCodes = []string{"200", "201", "202", "default"}

// Decode deserializes raw OpenAPI document bytes, accepting JSON or
// YAML, into the generic tree Parse consumes.
func Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)

	var doc map[string]any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, apidex.Errorf(apidex.EINVALID, "decoding OpenAPI JSON: %v", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apidex.Errorf(apidex.EINVALID, "decoding OpenAPI YAML: %v", err)
	}
	return doc, nil
}

// Parser parses OpenAPI documents for a single API.
type Parser struct {
	apiName    string
	authHeader string
	baseURL    string
}

// Option configures a Parser.
type Option func(*Parser)

// WithAuthHeader sets the authentication header name attached to every
// parsed endpoint.
func WithAuthHeader(name string) Option {
	return func(p *Parser) { p.authHeader = name }
}

// WithBaseURL overrides the base URL declared by the document itself.
func WithBaseURL(url string) Option {
	return func(p *Parser) { p.baseURL = url }
}

// NewParser creates a Parser for the named API.
func NewParser(apiName string, opts ...Option) *Parser {
	p := &Parser{apiName: apiName}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts a decoded OpenAPI/Swagger document into endpoints.
// Paths are visited in sorted order and methods in a fixed order so the
// result is deterministic; the decoded tree does not preserve document
// order.
func (p *Parser) Parse(doc map[string]any) []*apidex.Endpoint {
	baseURL := p.resolveBaseURL(doc)

	paths := getMap(doc, "paths")
	pathKeys := make([]string, 0, len(paths))
	for k := range paths {
		pathKeys = append(pathKeys, k)
	}
	sort.Strings(pathKeys)

	var endpoints []*apidex.Endpoint
	for _, path := range pathKeys {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}

		for _, method := range httpMethods {
			op, ok := pathItem[method].(map[string]any)
			if !ok {
				continue
			}
			endpoints = append(endpoints, p.parseOperation(path, method, op, pathItem, baseURL))
		}
	}

	return endpoints
}

// resolveBaseURL picks the base URL: an explicit override wins, then
// OpenAPI 3.x servers, then the Swagger 2.x scheme/host/basePath
// triple.
func (p *Parser) resolveBaseURL(doc map[string]any) string {
	if p.baseURL != "" {
		return p.baseURL
	}

	if servers := getSlice(doc, "servers"); len(servers) > 0 {
		if server, ok := servers[0].(map[string]any); ok {
			return getString(server, "url")
		}
		return ""
	}

	if host := getString(doc, "host"); host != "" {
		scheme := "https"
		if schemes := getSlice(doc, "schemes"); len(schemes) > 0 {
			if s, ok := schemes[0].(string); ok {
				scheme = s
			}
		}
		return scheme + "://" + host + getString(doc, "basePath")
	}

	return ""
}

func (p *Parser) parseOperation(path, method string, op, pathItem map[string]any, baseURL string) *apidex.Endpoint {
	section := defaultSection
	if tags := getSlice(op, "tags"); len(tags) > 0 {
		if tag, ok := tags[0].(string); ok && tag != "" {
			section = tag
		}
	}

	summary := getString(op, "summary")
	if summary == "" {
		summary = getString(op, "operationId")
	}
	if summary == "" {
		summary = strings.ToUpper(method) + " " + path
	}

	params := parseParameterList(getSlice(op, "parameters"))
	params = append(params, parseParameterList(getSlice(pathItem, "parameters"))...)

	var bodySchema map[string]any
	if requestBody := getMap(op, "requestBody"); requestBody != nil {
		var bodyParams []apidex.Parameter
		bodyParams, bodySchema = parseRequestBody(requestBody)
		params = append(params, bodyParams...)
	}

	return &apidex.Endpoint{
		APIName:           p.apiName,
		Section:           section,
		Path:              path,
		Method:            strings.ToUpper(method),
		Summary:           summary,
		Description:       getString(op, "description"),
		Parameters:        params,
		RequestBodySchema: bodySchema,
		RequestExample:    requestExample(op),
		ResponseExample:   responseExample(op),
		AuthHeader:        p.authHeader,
		BaseURL:           baseURL,
	}
}

// parseParameterList converts a declared parameter list. Entries that
// are unresolved references are skipped, not errors.
func parseParameterList(raw []any) []apidex.Parameter {
	var params []apidex.Parameter

	for _, entry := range raw {
		param, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if _, isRef := param["$ref"]; isRef {
			continue
		}

		// Swagger 2.x declares the type inline; OpenAPI 3.x nests it
		// under a schema object.
		schema := param
		if s := getMap(param, "schema"); s != nil {
			schema = s
		}

		params = append(params, apidex.Parameter{
			Name:        getString(param, "name"),
			Location:    apidex.ParseLocation(getString(param, "in")),
			Type:        apidex.ParseParamType(getString(schema, "type")),
			Required:    getBool(param, "required"),
			Description: getString(param, "description"),
			Default:     textValue(schema["default"]),
			Example:     textValue(schema["example"]),
		})
	}

	return params
}

// parseRequestBody expands an OpenAPI 3.x request body into one
// body-located parameter per schema property, plus the schema itself.
func parseRequestBody(requestBody map[string]any) ([]apidex.Parameter, map[string]any) {
	content := getMap(requestBody, "content")

	for _, contentType := range bodyContentTypes {
		media, ok := content[contentType].(map[string]any)
		if !ok {
			continue
		}

		schema := getMap(media, "schema")
		props := getMap(schema, "properties")

		requiredNames := map[string]bool{}
		for _, name := range getSlice(schema, "required") {
			if s, ok := name.(string); ok {
				requiredNames[s] = true
			}
		}

		propNames := make([]string, 0, len(props))
		for name := range props {
			propNames = append(propNames, name)
		}
		sort.Strings(propNames)

		var params []apidex.Parameter
		for _, name := range propNames {
			propSchema, ok := props[name].(map[string]any)
			if !ok {
				continue
			}
			params = append(params, apidex.Parameter{
				Name:        name,
				Location:    apidex.LocationBody,
				Type:        apidex.ParseParamType(getString(propSchema, "type")),
				Required:    requiredNames[name],
				Description: getString(propSchema, "description"),
				Default:     textValue(propSchema["default"]),
				Example:     textValue(propSchema["example"]),
			})
		}
		return params, schema
	}

	return nil, nil
}

// requestExample extracts a request body example following the priority
// chain: media-type example, first named example, schema example.
func requestExample(op map[string]any) string {
	requestBody := getMap(op, "requestBody")
	if requestBody == nil {
		return ""
	}
	return mediaExample(getMap(requestBody, "content"))
}

// responseExample extracts a response body example, checking statuses
// in responseCodes order. A Swagger 2.x examples map on the response
// object is honored as a last resort.
func responseExample(op map[string]any) string {
	responses := getMap(op, "responses")

	for _, code := range responseCodes {
		response, ok := responses[code].(map[string]any)
		if !ok {
			continue
		}

		if example := mediaExample(getMap(response, "content")); example != "" {
			return example
		}

		if legacy := getMap(response, "examples"); len(legacy) > 0 {
			mimeTypes := make([]string, 0, len(legacy))
			for mt := range legacy {
				mimeTypes = append(mimeTypes, mt)
			}
			sort.Strings(mimeTypes)
			if example := serializeIndented(legacy[mimeTypes[0]]); example != "" {
				return example
			}
		}
	}

	return ""
}

// mediaExample walks a content map's media types in lookup order and
// returns the first example found.
func mediaExample(content map[string]any) string {
	for _, contentType := range exampleContentTypes {
		media, ok := content[contentType].(map[string]any)
		if !ok {
			continue
		}

		if example, ok := media["example"]; ok {
			if s := serializeIndented(example); s != "" {
				return s
			}
		}

		if named := getMap(media, "examples"); len(named) > 0 {
			names := make([]string, 0, len(named))
			for name := range named {
				names = append(names, name)
			}
			sort.Strings(names)
			if first, ok := named[names[0]].(map[string]any); ok {
				if value, ok := first["value"]; ok {
					if s := serializeIndented(value); s != "" {
						return s
					}
				}
			}
		}

		schema := getMap(media, "schema")
		if example, ok := schema["example"]; ok {
			if s := serializeIndented(example); s != "" {
				return s
			}
		}
	}

	return ""
}

// serializeIndented renders a captured example value as indented
// structured text.
func serializeIndented(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// textValue applies the textual-serialization policy for optional
// default/example values: scalars render as their plain text form,
// composites as compact JSON, and absent values stay absent.
func textValue(v any) *string {
	if v == nil {
		return nil
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case bool:
		s = strconv.FormatBool(val)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprint(v)
		} else {
			s = string(data)
		}
	}
	return &s
}

func getMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func getSlice(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func getString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func getBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}
