// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g internal/api/router.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Resume the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "description": "Reuses the user with the same name (case-insensitive) and role, or creates one.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log in by name and role",
                "parameters": [
                    {"description": "Name and role", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/bugs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bugs"],
                "summary": "List bugs visible to the session user",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive match on title or description", "name": "search", "in": "query"},
                    {"type": "string", "description": "all, reported, processing or completed", "name": "status", "in": "query"},
                    {"type": "string", "description": "all, low, medium, high or critical", "name": "priority", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listBugsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bugs"],
                "summary": "Report a new bug",
                "parameters": [
                    {"type": "string", "description": "Repeated keys return the first report", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Bug report", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reportBugRequest"}}
                ],
                "responses": {
                    "200": {"description": "Idempotent replay", "schema": {"$ref": "#/definitions/handler.reportBugResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.reportBugResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/bugs/board": {
            "get": {
                "description": "Bugs grouped into reported, processing and completed columns with counts.",
                "produces": ["application/json"],
                "tags": ["bugs"],
                "summary": "Status board for the session user's dashboard",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive match on title or description", "name": "search", "in": "query"},
                    {"type": "string", "description": "all, reported, processing or completed", "name": "status", "in": "query"},
                    {"type": "string", "description": "all, low, medium, high or critical", "name": "priority", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.boardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/bugs/{id}": {
            "delete": {
                "tags": ["bugs"],
                "summary": "Delete a bug",
                "parameters": [
                    {"type": "string", "description": "Bug id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/bugs/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bugs"],
                "summary": "Move a bug to another status",
                "parameters": [
                    {"type": "string", "description": "Bug id", "name": "id", "in": "path", "required": true},
                    {"description": "Target status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.transitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.bugResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "developer"]}
            }
        },
        "handler.reportBugRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "steps": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "critical"]}
            }
        },
        "handler.transitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["reported", "processing", "completed"]}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.bugResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "steps": {"type": "string"},
                "priority": {"type": "string"},
                "status": {"type": "string"},
                "reported_by": {"type": "string"},
                "reported_at": {"type": "string"},
                "verified_by": {"type": "string"},
                "verified_at": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "handler.reportBugResponse": {
            "type": "object",
            "properties": {
                "bug": {"$ref": "#/definitions/handler.bugResponse"},
                "already_existed": {"type": "boolean"}
            }
        },
        "handler.listBugsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.bugResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.columnResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "count": {"type": "integer"},
                "bugs": {"type": "array", "items": {"$ref": "#/definitions/handler.bugResponse"}}
            }
        },
        "handler.boardResponse": {
            "type": "object",
            "properties": {
                "dashboard": {"type": "string"},
                "filter": {"type": "string"},
                "columns": {"type": "array", "items": {"$ref": "#/definitions/handler.columnResponse"}},
                "total": {"type": "integer"},
                "refreshed_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bug Tracker API",
	Description:      "Report bugs as an admin, move them through reported, processing and completed as a developer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
