// Package docs registers the OpenAPI description of the student API with swag,
// so `/swagger/doc.json` and the Swagger UI can serve it.
// Keep it in step with the godoc annotations on students.Handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/students": {
            "get": {
                "security": [{"TokenAuth": []}],
                "description": "Returns every student record in stored order.",
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/store.Student"}}},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"TokenAuth": []}],
                "description": "Appends a student. Duplicate ids are accepted. ` + "`" + `id` + "`" + ` may be a number or a numeric string.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Create a student",
                "parameters": [
                    {"description": "Student to create", "name": "student", "in": "body", "required": true, "schema": {"$ref": "#/definitions/students.StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/store.Student"}},
                    "400": {"description": "Body is not a JSON object, or invalid id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Record store failure", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"TokenAuth": []}],
                "description": "Replaces the first student with the body's id, keeping its position.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Update a student",
                "parameters": [
                    {"description": "Replacement record", "name": "student", "in": "body", "required": true, "schema": {"$ref": "#/definitions/students.StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/store.Student"}},
                    "400": {"description": "Body is not a JSON object, or invalid id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "No student with this id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Record store failure", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Get a student",
                "parameters": [
                    {"type": "integer", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/store.Student"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "No student with this id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"TokenAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Delete a student",
                "parameters": [
                    {"type": "integer", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/students.DeleteResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Missing or invalid credential", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "No student with this id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Record store failure", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"TokenAuth": []}],
                "description": "Returns the identity carried by the presented credential.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get the current caller",
                "responses": {
                    "200": {"description": "The authenticated identity", "schema": {"$ref": "#/definitions/users.MeResponse"}},
                    "401": {"description": "Unauthorized - Invalid or missing token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "A description of the error"},
                "kind": {"type": "string", "example": "not_found"}
            }
        },
        "store.Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "level": {"type": "string", "example": "A1"},
                "name": {"type": "string", "example": "Ann"}
            }
        },
        "students.DeleteResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "message": {"type": "string", "example": "student deleted"}
            }
        },
        "students.StudentRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "level": {"type": "string", "example": "A1"},
                "name": {"type": "string", "example": "Ann"}
            }
        },
        "users.MeResponse": {
            "type": "object",
            "properties": {
                "authenticated_at": {"type": "string", "description": "Server time when the request was authenticated"},
                "token_id": {"type": "string", "description": "The token id (jti), empty for tokens minted without one"},
                "user_id": {"type": "integer", "example": 123, "description": "The user id from the token's user_id claim"}
            }
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "description": "Signed token minted with ` + "`" + `studentsvc token` + "`" + `",
            "type": "apiKey",
            "name": "X-Auth-Token",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Student Records API",
	Description:      "CRUD over student records stored in a single JSON document, gated by a signed token.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
