package httpserver

import (
	"net/http"
	"strconv"
)

// openAPI describes the public routes. Kept by hand; there are only three.
var openAPI = map[string]any{
	"openapi": "3.0.3",
	"info": map[string]any{
		"title":   "Instagram Account Risk Detector API",
		"version": Version,
	},
	"paths": map[string]any{
		"/": map[string]any{
			"get": operation("Service banner", nil, http.StatusOK),
		},
		"/api/analyze": map[string]any{
			"post": operation("Score an account profile and store the result",
				map[string]any{
					"required": true,
					"content": map[string]any{
						"application/json": map[string]any{"schema": ref("AccountProfile")},
					},
				},
				http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError),
		},
		"/api/history": map[string]any{
			"get": map[string]any{
				"summary": "Most recent stored analyses, newest first",
				"parameters": []any{map[string]any{
					"name":   "limit",
					"in":     "query",
					"schema": map[string]any{"type": "integer", "minimum": 1, "maximum": 100, "default": 10},
				}},
				"responses": responses(http.StatusOK, http.StatusUnprocessableEntity, http.StatusInternalServerError),
			},
		},
	},
	"components": map[string]any{
		"schemas": map[string]any{
			"AccountProfile": map[string]any{
				"type":     "object",
				"required": []string{"username"},
				"properties": map[string]any{
					"username":         map[string]any{"type": "string"},
					"followers":        nonNegInt(),
					"following":        nonNegInt(),
					"posts":            nonNegInt(),
					"account_age_days": nonNegInt(),
					"verified":         map[string]any{"type": "boolean"},
					"visibility":       enum("public", "private"),
					"has_profile_pic":  enum("yes", "no", "suspicious"),
					"bio_text":         map[string]any{"type": "string"},
					"bio_links":        enum("none", "yes", "multiple", "suspicious"),
					"dm_activity":      enum("normal", "unsolicited", "suspicious"),
				},
			},
		},
	},
}

func operation(summary string, body map[string]any, codes ...int) map[string]any {
	op := map[string]any{"summary": summary, "responses": responses(codes...)}
	if body != nil {
		op["requestBody"] = body
	}
	return op
}

func responses(codes ...int) map[string]any {
	out := make(map[string]any, len(codes))
	for _, c := range codes {
		out[strconv.Itoa(c)] = map[string]any{"description": http.StatusText(c)}
	}
	return out
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func nonNegInt() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

func enum(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

// GET /docs
func (r *Router) handleDocs(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, openAPI)
	return nil
}
