// Package apib parses API Blueprint documents into endpoint records.
//
// A document is a flat sequence of groups (# Group headers). Each group
// is scanned for resources (## Name [path] headers), and each resource
// for actions (### Name [METHOD] headers). Every level is computed by
// locating header positions and slicing the text between consecutive
// headers, so each endpoint is extracted only from its own window.
package apib

import (
	"regexp"
	"strings"

	"github.com/apidex/apidex"
)

var (
	groupRe = regexp.MustCompile(`(?m)^# Group (.+)$`)

	// Resource: ## Name [/path] or ## Name [METHOD /path]
	resourceRe = regexp.MustCompile(`(?m)^## (.+?) \[(?:(GET|POST|PUT|PATCH|DELETE) )?([^\]]+)\]`)

	// Action: ### Name [METHOD] or ### Name [METHOD /path]
	actionRe = regexp.MustCompile(`(?m)^### (.+?) \[(GET|POST|PUT|PATCH|DELETE)(?: ([^\]]+))?\]`)

	// Entry line inside a Parameters or Attributes block:
	// + name (type-info) - description
	paramLineRe = regexp.MustCompile(`(?m)^\s+\+ (\w+)(?: \(([^)]+)\))?(?: - (.+))?$`)
	attrLineRe  = regexp.MustCompile(`(?m)^\s+\+ (\w+(?:\[\w*\])?)(?: \(([^)]+)\))?(?: - (.+))?$`)

	// Blocks are anchored on their literal header text, not indentation,
	// so a lookalike Attributes entry is never mistaken for a parameter.
	// The entry run ends at the first line that is not an indented
	// entry, so a sibling block after a blank line is never swallowed.
	paramsBlockRe = regexp.MustCompile(`\+ Parameters\s*\n((?:[ \t]+\+.+\n?)+)`)
	attrsBlockRe  = regexp.MustCompile(`\+ Attributes\s*\n((?:[ \t]+\+.+\n?)+)`)
)

// paramTypes is checked in this order; the first name found as a
// substring of the type-info text wins.
var paramTypes = []apidex.ParamType{
	apidex.TypeNumber,
	apidex.TypeInteger,
	apidex.TypeBoolean,
	apidex.TypeString,
	apidex.TypeArray,
	apidex.TypeObject,
}

// Parser parses API Blueprint content for a single API.
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

// WithBaseURL sets the base URL attached to every parsed endpoint.
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

// Parse converts API Blueprint content into endpoints in document
// order. It never fails: unrecognized structure is omitted and missing
// optional sections are skipped.
func (p *Parser) Parse(content string) []*apidex.Endpoint {
	var endpoints []*apidex.Endpoint

	headers := groupRe.FindAllStringSubmatchIndex(content, -1)
	for i, h := range headers {
		name := strings.TrimSpace(content[h[2]:h[3]])
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		endpoints = append(endpoints, p.parseGroup(name, content[h[1]:end])...)
	}

	return endpoints
}

// parseGroup emits endpoints for every resource and action in a group.
func (p *Parser) parseGroup(group, content string) []*apidex.Endpoint {
	var endpoints []*apidex.Endpoint

	headers := resourceRe.FindAllStringSubmatchIndex(content, -1)
	for i, h := range headers {
		name := strings.TrimSpace(content[h[2]:h[3]])
		method := submatch(content, h, 2)
		path := strings.TrimSpace(submatch(content, h, 3))

		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		window := content[h[1]:end]

		// A resource header carrying a method is itself an endpoint,
		// with the whole resource window as its body.
		if method != "" {
			endpoints = append(endpoints, p.makeEndpoint(group, name, method, path, window))
		}

		endpoints = append(endpoints, p.parseActions(group, name, path, window)...)
	}

	return endpoints
}

// parseActions emits one endpoint per action header in a resource
// window. Actions inherit the resource path and name when they declare
// none of their own.
func (p *Parser) parseActions(group, resourceName, resourcePath, content string) []*apidex.Endpoint {
	var endpoints []*apidex.Endpoint

	headers := actionRe.FindAllStringSubmatchIndex(content, -1)
	for i, h := range headers {
		name := strings.TrimSpace(submatch(content, h, 1))
		method := submatch(content, h, 2)
		path := strings.TrimSpace(submatch(content, h, 3))

		if path == "" {
			path = resourcePath
		}
		if name == "" {
			name = resourceName
		}

		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		window := content[h[1]:end]

		endpoints = append(endpoints, p.makeEndpoint(group, name, method, path, window))
	}

	return endpoints
}

// makeEndpoint extracts everything an endpoint needs from its own
// content window.
func (p *Parser) makeEndpoint(section, name, method, path, window string) *apidex.Endpoint {
	params := parseParameters(window)
	params = append(params, parseAttributes(window)...)

	return &apidex.Endpoint{
		APIName:         p.apiName,
		Section:         section,
		Path:            path,
		Method:          method,
		Summary:         name,
		Description:     extractDescription(window),
		Parameters:      params,
		RequestExample:  extractExample(window, "Request"),
		ResponseExample: extractExample(window, "Response"),
		AuthHeader:      p.authHeader,
		BaseURL:         p.baseURL,
	}
}

// parseParameters extracts entries from a + Parameters block. A
// parameter lives in the path when its {name} placeholder appears
// anywhere in the window, otherwise in the query.
func parseParameters(window string) []apidex.Parameter {
	block := paramsBlockRe.FindStringSubmatch(window)
	if block == nil {
		return nil
	}

	var params []apidex.Parameter
	for _, m := range paramLineRe.FindAllStringSubmatch(block[1], -1) {
		name, typeInfo, desc := m[1], m[2], m[3]

		location := apidex.LocationQuery
		if strings.Contains(window, "{"+name+"}") {
			location = apidex.LocationPath
		}

		params = append(params, apidex.Parameter{
			Name:        name,
			Location:    location,
			Type:        detectType(typeInfo),
			Required:    strings.Contains(strings.ToLower(typeInfo), "required"),
			Description: strings.TrimSpace(desc),
		})
	}
	return params
}

// parseAttributes extracts request-body fields from a + Attributes
// block. An entry marked both required and optional is treated as not
// required.
func parseAttributes(window string) []apidex.Parameter {
	block := attrsBlockRe.FindStringSubmatch(window)
	if block == nil {
		return nil
	}

	var params []apidex.Parameter
	for _, m := range attrLineRe.FindAllStringSubmatch(block[1], -1) {
		name, typeInfo, desc := m[1], m[2], m[3]

		info := strings.ToLower(typeInfo)
		required := strings.Contains(info, "required") && !strings.Contains(info, "optional")

		params = append(params, apidex.Parameter{
			Name:        name,
			Location:    apidex.LocationBody,
			Type:        detectType(typeInfo),
			Required:    required,
			Description: strings.TrimSpace(desc),
		})
	}
	return params
}

// detectType returns the first known type named in the type-info text,
// defaulting to string.
func detectType(typeInfo string) apidex.ParamType {
	info := strings.ToLower(typeInfo)
	for _, t := range paramTypes {
		if strings.Contains(info, string(t)) {
			return t
		}
	}
	return apidex.TypeString
}

// extractExample captures the body of a "+ Request" or "+ Response"
// block: the indented lines following the block's + Body line, taken
// until indentation breaks, de-indented by their minimum common leading
// whitespace. Returns "" when the block is absent.
func extractExample(window, section string) string {
	lines := strings.Split(window, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "+ "+section) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	body := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "+ Body") {
			body = i
			break
		}
	}
	if body < 0 {
		return ""
	}

	var captured []string
	for i := body + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			captured = append(captured, line)
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		captured = append(captured, line)
	}

	return strings.TrimSpace(deindent(captured))
}

// deindent strips the minimum common leading whitespace across
// non-blank lines.
func deindent(lines []string) string {
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}

// extractDescription joins the window's text up to the first + or #
// line. Blank lines are skipped, not preserved as breaks.
func extractDescription(window string) string {
	var parts []string
	for _, line := range strings.Split(window, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "+") || strings.HasPrefix(t, "#") {
			break
		}
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// submatch returns the text of capture group n, or "" when the group
// did not participate in the match.
func submatch(s string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return s[idx[2*n]:idx[2*n+1]]
}
