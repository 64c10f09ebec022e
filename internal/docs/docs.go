// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/main.go -o internal/docs
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["root"],
                "summary": "Welcome message",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httptransport.welcomeResponse"}}
                }
            }
        },
        "/api/menu": {
            "get": {
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "List menu items",
                "parameters": [
                    {"type": "string", "description": "Exact category match", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Create a menu item",
                "parameters": [
                    {"description": "Menu item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/menuitem.MenuItem"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/converters.CreatedResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "parameters": [
                    {"type": "string", "description": "Exact status match", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Order"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/converters.CreatedResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/test": {
            "get": {
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Backend and database diagnostics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/diagsvc.Report"}}
                }
            }
        }
    },
    "definitions": {
        "converters.CreatedResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "diagsvc.Report": {
            "type": "object",
            "properties": {
                "backend": {"type": "string"},
                "collections": {"type": "array", "items": {"type": "string"}},
                "connection_status": {"type": "string"},
                "database": {"type": "string"},
                "database_name": {"type": "string"},
                "database_url": {"type": "string"}
            }
        },
        "httptransport.welcomeResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "menuitem.MenuItem": {
            "type": "object",
            "required": ["category", "name", "price"],
            "properties": {
                "category": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "is_available": {"type": "boolean", "default": true},
                "name": {"type": "string"},
                "price": {"type": "number", "minimum": 0}
            }
        },
        "order.Customer": {
            "type": "object",
            "required": ["name", "phone"],
            "properties": {
                "address": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "order.Order": {
            "type": "object",
            "required": ["customer", "items", "subtotal", "tax", "total"],
            "properties": {
                "customer": {"$ref": "#/definitions/order.Customer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/orderitem.OrderItem"}},
                "notes": {"type": "string"},
                "status": {"type": "string", "default": "pending"},
                "subtotal": {"type": "number", "minimum": 0},
                "tax": {"type": "number", "minimum": 0},
                "total": {"type": "number", "minimum": 0}
            }
        },
        "orderitem.OrderItem": {
            "type": "object",
            "required": ["menu_item_id", "name", "price", "quantity"],
            "properties": {
                "menu_item_id": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"detail": {}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tutti Amici API",
	Description:      "Menu and order management for the Tutti Amici restaurant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
