// Package docs registers the API's OpenAPI document with swag
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/search": {
            "post": {
                "tags": ["Search"],
                "summary": "Search dashboard",
                "description": "Runs the primary search and every facet in one backend round trip",
                "operationId": "searchDashboard",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SearchInput"}}}
                },
                "responses": {
                    "200": {
                        "description": "ok",
                        "headers": {"X-Cache": {"description": "HIT when served from the response cache", "schema": {"type": "string"}}},
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Dashboard"}}}
                    }
                }
            }
        },
        "/search/opinions": {
            "post": {
                "tags": ["Search"],
                "summary": "Opinion feed",
                "operationId": "searchOpinions",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.SearchInput"}}}
                },
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.OpinionPage"}}}
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Health check",
                "operationId": "metaHealth",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness probe with dependency checks",
                "operationId": "metaReady",
                "responses": {
                    "200": {"description": "ok or degraded", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ReadyResponse"}}}},
                    "503": {"description": "a dependency check failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ReadyResponse"}}}}
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "operationId": "metaVersion",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}}}
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info and uptime",
                "operationId": "metaService",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ServiceResponse"}}}}}
            }
        }
    },
    "components": {
        "schemas": {
            "domain.SearchInput": {
                "type": "object",
                "properties": {
                    "q": {"type": "string", "maxLength": 200, "example": "crash"},
                    "product": {"type": "string", "enum": ["firefox", "mobile"], "example": "firefox"},
                    "version": {"type": "string", "description": "-- selects every version", "example": "4.0"},
                    "sentiment": {"type": "string", "enum": ["happy", "sad", "ideas"], "example": "sad"},
                    "locale": {"type": "string", "example": "en-US"},
                    "platform": {"type": "string", "example": "win7"},
                    "manufacturer": {"type": "string", "example": "Samsung"},
                    "device": {"type": "string", "example": "Nexus S"},
                    "date_start": {"type": "string", "format": "date", "example": "2011-05-01"},
                    "date_end": {"type": "string", "format": "date", "example": "2011-05-31"},
                    "page": {"type": "integer", "example": 1}
                }
            },
            "domain.Opinion": {
                "type": "object",
                "properties": {
                    "id": {"type": "integer", "example": 1024},
                    "type": {"type": "integer", "example": 2},
                    "sentiment": {"type": "string", "example": "issue"},
                    "product": {"type": "integer", "example": 1},
                    "version": {"type": "string", "example": "4.0"},
                    "platform": {"type": "string", "example": "win7"},
                    "locale": {"type": "string", "example": "en-US"},
                    "manufacturer": {"type": "string", "example": "Samsung"},
                    "device": {"type": "string", "example": "Nexus S"},
                    "description": {"type": "string", "example": "Crashes when I open a new tab"},
                    "url": {"type": "string", "example": "https://example.com/"},
                    "created": {"type": "string", "format": "date-time", "example": "2011-05-10T14:03:00Z"}
                }
            },
            "window.Page": {
                "type": "object",
                "properties": {
                    "number": {"type": "integer", "example": 1},
                    "per_page": {"type": "integer", "example": 20},
                    "num_pages": {"type": "integer", "example": 11},
                    "count": {"type": "integer", "example": 212},
                    "items": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Opinion"}}
                }
            },
            "domain.Sentiment": {
                "type": "object",
                "properties": {
                    "happy": {"type": "integer", "example": 120},
                    "sad": {"type": "integer", "example": 80},
                    "ideas": {"type": "integer", "example": 12},
                    "total": {"type": "integer", "example": 212},
                    "sentiment": {"type": "string", "example": "happy"}
                }
            },
            "domain.DemoRow": {
                "type": "object",
                "properties": {
                    "label": {"type": "string", "nullable": true, "example": "win7"},
                    "name": {"type": "string", "example": "Windows 7"},
                    "count": {"type": "integer", "example": 40}
                }
            },
            "domain.Demographics": {
                "type": "object",
                "properties": {
                    "locale": {"type": "array", "nullable": true, "items": {"$ref": "#/components/schemas/domain.DemoRow"}},
                    "platform": {"type": "array", "nullable": true, "items": {"$ref": "#/components/schemas/domain.DemoRow"}},
                    "manufacturer": {"type": "array", "nullable": true, "items": {"$ref": "#/components/schemas/domain.DemoRow"}},
                    "device": {"type": "array", "nullable": true, "items": {"$ref": "#/components/schemas/domain.DemoRow"}}
                }
            },
            "facets.Point": {
                "type": "object",
                "properties": {
                    "day": {"type": "integer", "example": 1305849600},
                    "count": {"type": "integer", "example": 14}
                }
            },
            "domain.Chart": {
                "type": "object",
                "properties": {
                    "series": {
                        "type": "array",
                        "items": {
                            "type": "object",
                            "properties": {
                                "name": {"type": "string", "example": "Praise"},
                                "data": {"type": "array", "items": {"$ref": "#/components/schemas/facets.Point"}}
                            }
                        }
                    }
                }
            },
            "domain.Dashboard": {
                "type": "object",
                "properties": {
                    "dashboard": {"type": "boolean", "example": false},
                    "q": {"type": "string", "example": "crash"},
                    "product": {"type": "string", "example": "firefox"},
                    "version": {"type": "string", "example": "4.0"},
                    "opinion_count": {"type": "integer", "example": 212},
                    "page": {"$ref": "#/components/schemas/window.Page"},
                    "sent": {"$ref": "#/components/schemas/domain.Sentiment"},
                    "demo": {"$ref": "#/components/schemas/domain.Demographics"},
                    "period": {"type": "string", "enum": ["infin", "1d", "7d", "30d", "custom"], "example": "7d"},
                    "days": {"type": "integer", "example": 7},
                    "chart": {"$ref": "#/components/schemas/domain.Chart"},
                    "cached": {"type": "boolean", "example": false}
                }
            },
            "domain.OpinionPage": {
                "type": "object",
                "properties": {
                    "q": {"type": "string", "example": "crash"},
                    "opinion_count": {"type": "integer", "example": 212},
                    "page": {"$ref": "#/components/schemas/window.Page"}
                }
            },
            "http.HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean", "example": true},
                    "service": {"type": "string", "example": "inputdash-api"},
                    "started": {"type": "string", "example": "2026-10-18T13:00:00Z"},
                    "now": {"type": "string", "example": "2026-10-18T13:05:00Z"}
                }
            },
            "http.ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "search"},
                    "status": {"type": "string", "enum": ["ok", "fail", "skipped"], "example": "ok"},
                    "error": {"type": "string"}
                }
            },
            "http.ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["ok", "degraded", "fail"], "example": "ok"},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/http.ReadyCheck"}},
                    "now": {"type": "string", "example": "2026-10-18T13:05:00Z"}
                }
            },
            "http.ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "inputdash-api"},
                    "started": {"type": "string", "example": "2026-10-18T13:00:00Z"},
                    "uptime": {"type": "integer", "example": 300},
                    "modules": {"type": "array", "items": {"type": "string"}, "example": ["meta", "search"]}
                }
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string", "example": "inputdash-api"},
                    "version": {"type": "string", "example": "v0.1.0"},
                    "commit": {"type": "string", "example": "579f33b"},
                    "date": {"type": "string", "example": "2026-10-18T12:00:00Z"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "inputdash API",
	Description:      "Search and reporting API for the feedback dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
