// Package docs is the swagger description of the storefront JSON API.
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
        "/products": {
            "get": {
                "description": "Products with their category name, optionally filtered by category.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.CatalogEntry"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Category"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cart": {
            "get": {
                "description": "Cart of the signed-in user; empty for anonymous visitors.",
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get the session cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Cart"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "model.Product": {
            "type": "object",
            "properties": {
                "category_id": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "model.CatalogEntry": {
            "type": "object",
            "properties": {
                "category_id": {"type": "integer"},
                "category_name": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "model.CartLine": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "model.Cart": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/model.CartLine"}},
                "total": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Mi Tienda API",
	Description:      "Read-only JSON view of the storefront catalog and the session cart.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
