// Package docs holds the swagger document served under /swagger in non-production mode.
// Regenerate with: swag init -g cmd/fund_backend/main.go -o cmd/docs
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
        "/boxes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "List boxes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BoxResponse"}}},
                    "503": {"description": "Boxes are still loading"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Create a new box",
                "parameters": [{"description": "Box details", "name": "box", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBoxRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BoxResponse"}},
                    "400": {"description": "Invalid input format or validation error"},
                    "409": {"description": "A box with this id already exists"},
                    "500": {"description": "Box kept in memory but not persisted", "schema": {"$ref": "#/definitions/dto.UnsyncedMutationResponse"}},
                    "503": {"description": "Boxes are still loading"}
                }
            }
        },
        "/boxes/{boxID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Get a box by ID",
                "parameters": [{"type": "string", "description": "Box ID", "name": "boxID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BoxResponse"}},
                    "404": {"description": "Box not found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Edit a box",
                "parameters": [
                    {"type": "string", "description": "Box ID", "name": "boxID", "in": "path", "required": true},
                    {"description": "New box fields", "name": "box", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBoxRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EditBoxResponse"}},
                    "400": {"description": "Invalid input format or validation error"},
                    "500": {"description": "Box edited in memory but not persisted", "schema": {"$ref": "#/definitions/dto.UnsyncedMutationResponse"}}
                }
            }
        },
        "/selection": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Get the selected box",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SelectionResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Select a box",
                "parameters": [{"description": "Box to select", "name": "selection", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectBoxRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SelectionResponse"}},
                    "404": {"description": "Box not found"}
                }
            }
        },
        "/selection/edit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Edit the selected box",
                "parameters": [{"description": "New box fields", "name": "box", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBoxRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EditBoxResponse"}},
                    "409": {"description": "No box selected"}
                }
            }
        },
        "/sync": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["boxes"],
                "summary": "Storage sync diagnostics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SyncStatusResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.BoxResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "balance": {"type": "number"},
                "balanceFormatted": {"type": "string"},
                "balanceDisplay": {"type": "string"}
            }
        },
        "dto.CreateBoxRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "id": {"type": "string", "maxLength": 128},
                "name": {"type": "string", "maxLength": 200},
                "balance": {"type": "number"}
            }
        },
        "dto.UpdateBoxRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "balance": {"type": "number"}
            }
        },
        "dto.EditBoxResponse": {
            "type": "object",
            "properties": {
                "box": {"$ref": "#/definitions/dto.BoxResponse"},
                "replaced": {"type": "boolean"}
            }
        },
        "dto.UnsyncedMutationResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "warning": {"type": "string"},
                "box": {"$ref": "#/definitions/dto.BoxResponse"}
            }
        },
        "dto.SelectBoxRequest": {
            "type": "object",
            "properties": {"boxID": {"type": "string"}}
        },
        "dto.SelectionResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["NO_SELECTION", "HAS_SELECTION"]},
                "box": {"$ref": "#/definitions/dto.BoxResponse"}
            }
        },
        "dto.SyncStatusResponse": {
            "type": "object",
            "properties": {
                "loaded": {"type": "boolean"},
                "pendingSync": {"type": "boolean"},
                "lastError": {"type": "string"},
                "lastSyncedAt": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Class Fund API",
	Description:      "Boxes of a class fund: list, create, edit and select boxes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
