// Package docs chứa tài liệu OpenAPI của todo-api, được phục vụ tại /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "bearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AuthResult"}},
                    "400": {"description": "Validation error or user already exists", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResult"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"bearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/api/todos": {
            "get": {
                "tags": ["Todos"],
                "summary": "List the caller's todos, newest first",
                "security": [{"bearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Todo"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Message"}}
                }
            },
            "post": {
                "tags": ["Todos"],
                "summary": "Create a todo",
                "security": [{"bearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTodoInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Todo"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Message"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/api/todos/{id}": {
            "get": {
                "tags": ["Todos"],
                "summary": "Get one todo",
                "security": [{"bearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Todo"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/Message"}}
                }
            },
            "put": {
                "tags": ["Todos"],
                "summary": "Partially update a todo; omitted fields keep their value",
                "security": [{"bearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTodoInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Todo"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Message"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/Message"}}
                }
            },
            "delete": {
                "tags": ["Todos"],
                "summary": "Delete a todo",
                "security": [{"bearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/api/todos/{id}/toggle": {
            "patch": {
                "tags": ["Todos"],
                "summary": "Flip the completed flag",
                "security": [{"bearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Todo"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/Message"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness and store reachability",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Message": {"type": "object", "properties": {"message": {"type": "string"}}},
        "RegisterInput": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "AuthResult": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "token": {"type": "string"}}
        },
        "User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}}
        },
        "Todo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "dueDate": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateTodoInput": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "example": "Buy milk"},
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"], "default": "medium"},
                "dueDate": {"type": "string", "format": "date-time", "example": "2026-02-15T14:30:00Z"}
            }
        },
        "UpdateTodoInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "completed": {"type": "boolean"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "dueDate": {"type": "string", "format": "date-time"}
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
	Title:            "Todo API",
	Description:      "Per-user todo lists with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
