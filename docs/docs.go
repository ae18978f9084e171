// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Create a new user",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}": {
            "get": {
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/profile": {
            "put": {
                "tags": ["users"],
                "summary": "Update the cycle profile",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/records": {
            "get": {
                "tags": ["records"],
                "summary": "List daily records",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "cursor", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RecordListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/records/{date}": {
            "get": {
                "tags": ["records"],
                "summary": "Get a daily record",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RecordResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            },
            "put": {
                "tags": ["records"],
                "summary": "Write a daily record",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.UpsertRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Record replaced", "schema": {"$ref": "#/definitions/domain.RecordResponse"}},
                    "201": {"description": "Record created", "schema": {"$ref": "#/definitions/domain.RecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            },
            "delete": {
                "tags": ["records"],
                "summary": "Delete a daily record",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Record deleted"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/analytics": {
            "get": {
                "tags": ["analytics"],
                "summary": "Compute analytics",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"},
                    {"enum": ["daily", "weekly", "monthly"], "type": "string", "default": "daily", "name": "granularity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AnalyticsResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/health-score": {
            "get": {
                "tags": ["analytics"],
                "summary": "Get the health score for a day",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HealthScore"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/insights/narrative": {
            "get": {
                "tags": ["insights"],
                "summary": "Get an LLM narrative of the computed insights",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.NarrativeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/insights/feedback": {
            "post": {
                "tags": ["insights"],
                "summary": "Rate a narrative",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "userId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.FeedbackRequest"}}
                ],
                "responses": {
                    "204": {"description": "Feedback accepted"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CreateUserRequest": {"type": "object", "properties": {"timezone": {"type": "string"}}},
        "domain.UpdateProfileRequest": {"type": "object", "properties": {"average_cycle_length_days": {"type": "integer"}, "is_on_continuous_pill": {"type": "boolean"}}},
        "domain.UserResponse": {"type": "object", "properties": {"id": {"type": "string"}, "timezone": {"type": "string"}, "profile": {"type": "object"}, "created_at": {"type": "string"}}},
        "domain.UpsertRecordRequest": {"type": "object"},
        "domain.RecordResponse": {"type": "object"},
        "domain.RecordListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.RecordResponse"}}, "pagination": {"type": "object"}}},
        "domain.AnalyticsResult": {"type": "object"},
        "domain.HealthScore": {"type": "object", "properties": {"date": {"type": "string"}, "total": {"type": "number"}, "breakdown": {"type": "object"}}},
        "domain.NarrativeResponse": {"type": "object"},
        "domain.FeedbackRequest": {"type": "object", "properties": {"trace_id": {"type": "string"}, "score": {"type": "integer"}, "comment": {"type": "string"}}},
        "problem.Problem": {"type": "object", "properties": {"type": {"type": "string"}, "title": {"type": "string"}, "status": {"type": "integer"}, "detail": {"type": "string"}, "instance": {"type": "string"}, "request_id": {"type": "string"}, "errors": {"type": "array", "items": {"type": "object"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Health Journal API",
	Description:      "Daily health journal with analytics, cycle forecasts and LLM narratives.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
