// Package swaggerkit serves the Swagger UI and an OpenAPI document assembled from module fragments
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"devsurvey/internal/core/version"
	"devsurvey/internal/platform/config"
	perr "devsurvey/internal/platform/errors"
)

// SpecMutator lets modules add their paths and schemas to the served document
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators = map[string]SpecMutator{}
)

// Register adds or replaces the spec fragment owned by name
// modules call it from their constructor so the document follows what is mounted
func Register(name string, m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	mutators[name] = m
}

// baseSpec is the skeleton every fragment is applied to
func baseSpec() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Developer Survey API",
			"version":     version.Info().Version,
			"description": "Filter the developer survey and read ranked aggregates for the dashboard",
		},
		"paths": map[string]any{},
	}
}

// Build assembles the document. Fragments are applied in name order
func Build() map[string]any {
	spec := baseSpec()

	// OAS3 base url lives in servers, not BasePath
	ensureServers(spec, "/api/v1")

	cfg := config.New().Prefix("DEVSURVEY_API_")
	if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + v
			}
		}
	}

	mu.Lock()
	names := make([]string, 0, len(mutators))
	for n := range mutators {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		mutators[n](spec)
	}
	mu.Unlock()

	ensureSchemas(spec)
	addDefaultResponses(spec)
	return spec
}

// serveDocJSON serves the assembled document
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Build())
	}
}

// Path adds one operation under path and method
func Path(spec map[string]any, path, method string, op map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		paths = map[string]any{}
		spec["paths"] = paths
	}
	node, ok := paths[path].(map[string]any)
	if !ok {
		node = map[string]any{}
		paths[path] = node
	}
	node[strings.ToLower(method)] = op
}

// Op builds an operation with a 200 envelope response. body, when set, is the example request body
func Op(tag, summary string, body any) map[string]any {
	op := map[string]any{
		"tags":    []any{tag},
		"summary": summary,
		"responses": map[string]any{
			"200": map[string]any{
				"description": "OK",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
					},
				},
			},
		},
	}
	if body != nil {
		op["requestBody"] = map[string]any{
			"required": false,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema":  map[string]any{"type": "object"},
					"example": body,
				},
			},
		}
	}
	return op
}

// ensureServers makes sure the spec is OAS3 and has a servers array
// swagger http ui can't support 3.1 at the moment, so downconvert if needed
func ensureServers(spec map[string]any, url string) {
	// if it's swagger 2, lift to oas3
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}

	// if it's already oas3, downsample 3.1 -> 3.0.3
	if v, ok := spec["openapi"].(string); ok {
		if strings.HasPrefix(v, "3.1") {
			spec["openapi"] = "3.0.3"
		}
	} else {
		// no version set at all: pick a sane default
		spec["openapi"] = "3.0.3"
	}

	// ensure servers
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{
			map[string]any{"url": url},
		}
	}
}

// ensureSchemas adds the success and error envelope models if missing. Both mirror pnet.Wire
func ensureSchemas(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	str := map[string]any{"type": "string"}
	integer := map[string]any{"type": "integer", "format": "int32"}
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = map[string]any{
			"type":        "object",
			"description": "Standard success envelope, payload under data",
			"properties": map[string]any{
				"status_code": integer,
				"status":      str,
				"request_id":  str,
				"data":        map[string]any{"type": "object"},
			},
			"required": []any{"status_code", "status"},
		}
	}
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type":        "object",
			"description": "Standard error envelope, field names the offending input when known",
			"properties": map[string]any{
				"status_code": integer,
				"status":      str,
				"code":        integer,
				"error":       str,
				"field":       str,
				"request_id":  str,
			},
			"required": []any{"status_code", "status", "code", "error"},
		}
	}
}

// errorExample documents one error status with an example envelope
func errorExample(status int, code perr.ErrorCode, msg, field string) map[string]any {
	ex := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        int(code),
		"error":       msg,
		"request_id":  "579f33bf50b1/abc-000001",
	}
	if field != "" {
		ex["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": ex,
			},
		},
	}
}

// addDefaultResponses injects the error responses an operation can produce unless the
// fragment already documents them. Only operations with a body can fail binding
func addDefaultResponses(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	always := map[string]any{
		"500": errorExample(http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered", ""),
	}
	withBody := map[string]any{
		"400": errorExample(http.StatusBadRequest, perr.ErrorCodeValidation, "max must not be below min", "years.max"),
		"422": errorExample(http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, `ages: unknown value "99-100 years old"`, "ages"),
	}

	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for method, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			add := func(defaults map[string]any) {
				for code, r := range defaults {
					if _, exists := resps[code]; !exists {
						resps[code] = r
					}
				}
			}
			add(always)
			if _, hasBody := op["requestBody"]; hasBody || method == "post" {
				add(withBody)
			}
		}
	}
}
