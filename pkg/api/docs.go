package api

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
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/items": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List items",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/storage.Entry"}}}}
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Store an item under a new id",
                "parameters": [
                    {"description": "Item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/codec.Item"}}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/api.CreateItemResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/items/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get an item",
                "parameters": [
                    {"type": "string", "description": "Item ksuid", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "ETag of a cached copy", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"ETag": {"type": "string", "description": "xxhash of the stored record"}},
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/storage.Entry"}}}
                            ]
                        }
                    },
                    "304": {"description": "Not Modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Replace an item",
                "parameters": [
                    {"type": "string", "description": "Item ksuid", "name": "id", "in": "path", "required": true},
                    {"description": "Item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/codec.Item"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Delete an item",
                "parameters": [
                    {"type": "string", "description": "Item ksuid", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/codec/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "tags": ["codec"],
                "summary": "Encode an item to raw bytes",
                "parameters": [
                    {"enum": ["legacy", "framed"], "type": "string", "description": "Output format", "name": "format", "in": "query"},
                    {"description": "Item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/codec.Item"}}
                ],
                "responses": {
                    "200": {
                        "description": "Encoded record",
                        "headers": {"X-Item-Format": {"type": "string", "description": "legacy or framed"}},
                        "schema": {"type": "string", "format": "binary"}
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/codec/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["codec"],
                "summary": "Decode raw record bytes",
                "parameters": [
                    {"description": "Encoded record", "name": "record", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Item-Format": {"type": "string", "description": "legacy or framed"}},
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/api.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/codec.Item"}}}
                            ]
                        }
                    },
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "api.CreateItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "item": {"$ref": "#/definitions/codec.Item"}
            }
        },
        "codec.Item": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "integer", "format": "int32"},
                "weight": {"type": "number", "format": "float"}
            }
        },
        "storage.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "item": {"$ref": "#/definitions/codec.Item"},
                "size": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "itemcodec API",
	Description:      "Item catalog and item record codec.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
