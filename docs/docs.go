// Package docs registers the Swagger specification served at /swagger/*.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Club login",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new club",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/auth/clubs": {
            "get": {
                "tags": ["auth"],
                "summary": "List registered clubs",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/management/{tab}": {
            "get": {
                "tags": ["management"],
                "summary": "List records for a tab",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string", "enum": ["events", "members", "budget", "reports"]}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "tags": ["management"],
                "summary": "Create a record",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/management/{tab}/{id}": {
            "put": {
                "tags": ["management"],
                "summary": "Update a record",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["management"],
                "summary": "Delete a record",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tab", "in": "path", "required": true, "type": "string"}, {"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/management/stats": {
            "get": {
                "tags": ["management"],
                "summary": "Dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events/generate": {
            "post": {
                "tags": ["events"],
                "summary": "Generate an event document",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "event_description", "in": "formData", "required": true, "type": "string"}, {"name": "document_type", "in": "formData", "type": "string"}, {"name": "format", "in": "formData", "type": "string"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/feedback/analyze": {
            "post": {
                "tags": ["feedback"],
                "summary": "Analyze feedback CSV",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/budget/suggest": {
            "post": {
                "tags": ["budget"],
                "summary": "Suggest an event budget",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/mou/generate": {
            "post": {
                "tags": ["mou"],
                "summary": "Generate an MOU",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/image/caption": {
            "post": {
                "tags": ["image"],
                "summary": "Caption images",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "images", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CampusOps API",
	Description:      "Event and member management API for campus clubs, with AI-assisted document generation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
