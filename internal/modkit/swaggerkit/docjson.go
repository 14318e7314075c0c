package swaggerkit

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"

	perr "inputdash/internal/platform/errors"
	pnet "inputdash/internal/platform/net"
	docs "inputdash/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var (
	mutMu    sync.Mutex
	mutators []SpecMutator
)

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator; modules call it while being built
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

// Document parses the generated doc and applies the shared error model,
// the servers entry and every registered mutator
func Document(o Options) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
		return nil, err
	}

	normalizeVersion(spec)
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": o.server()}}
	}
	if o.TitleSuffix != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + o.TitleSuffix
			}
		}
	}

	ensureErrorResponseDefinition(spec)
	AddResponse(spec, "/", "500", "Internal Server Error", defaultServerError)
	AddResponse(spec, "/", "400", "Bad Request", defaultBadRequest)

	mutMu.Lock()
	ms := slices.Clone(mutators)
	mutMu.Unlock()
	for _, m := range ms {
		m(spec)
	}
	return spec, nil
}

func serveDocJSON(o Options) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := Document(o)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion pins the document to OpenAPI 3.0.3, the newest the bundled UI renders
func normalizeVersion(spec map[string]any) {
	delete(spec, "swagger")
	v, _ := spec["openapi"].(string)
	if v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
}

// child returns m[key] as an object, creating it when absent or not an object
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorResponseDefinition adds the ErrorResponse schema matching the error envelope
func ensureErrorResponseDefinition(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      str,
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

const exampleRequestID = "579f33bf50b1/abc-000001"

// example renders err through the real envelope so codes and statuses track the error table
func example(err error) map[string]any {
	_, w := pnet.Error(err, exampleRequestID)
	raw, _ := json.Marshal(w)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	return m
}

var (
	defaultServerError = example(perr.PanicErrf("panic recovered"))
	defaultBadRequest  = example(perr.WithField(
		perr.Newf(perr.ErrorCodeValidation, "sentiment must be one of [happy sad ideas]"), "sentiment"))
)

// AddResponse injects an error response with example under status on every operation
// whose path has prefix, unless the operation already declares it
func AddResponse(spec map[string]any, prefix, status, description string, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	for path, item := range paths {
		node, ok := item.(map[string]any)
		if !ok || !strings.HasPrefix(path, prefix) {
			continue
		}
		for _, v := range node {
			if op, ok := v.(map[string]any); ok {
				if responses := child(op, "responses"); responses[status] == nil {
					responses[status] = resp
				}
			}
		}
	}
}
