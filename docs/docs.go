// Package docs registers the chatd OpenAPI document with swag.
// Regenerate with: swag init -g cmd/chatd/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "chatd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Welcome",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/chat/": {
            "post": {
                "description": "Streams generated text as server-sent events (default) or NDJSON.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream", "application/x-ndjson"],
                "tags": ["chat"],
                "summary": "Stream a chat reply",
                "parameters": [
                    {
                        "description": "Conversation",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.ChatRequest"}
                    },
                    {
                        "type": "string",
                        "description": "Set to ndjson for newline-delimited JSON",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/chat/model-info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Model information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelInfoResponse"}}
                }
            }
        },
        "/health/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "example": "user"},
                "content": {"type": "string", "example": "Write a haiku about the ocean."}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/types.ChatMessage"}},
                "max_tokens": {"type": "integer", "example": 256},
                "temperature": {"type": "number", "example": 0.7},
                "top_p": {"type": "number", "example": 0.9},
                "top_k": {"type": "integer", "example": 40},
                "stop": {"type": "array", "items": {"type": "string"}},
                "seed": {"type": "integer", "example": 42}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "model_name": {"type": "string", "example": "llama-2-7b-chat.gguf"},
                "path": {"type": "string", "example": "/app/models/llama-2-7b-chat.gguf"},
                "size_bytes": {"type": "integer", "example": 4081004224},
                "size_mb": {"type": "number", "example": 3891.91},
                "loaded_at_unix": {"type": "integer", "example": 1700000000}
            }
        },
        "types.StreamStats": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "chunks": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "in_flight": {"type": "boolean"},
                "outcome": {"type": "string", "example": "done"}
            }
        },
        "types.GenerationStats": {
            "type": "object",
            "properties": {
                "streams_total": {"type": "integer"},
                "chunks_total": {"type": "integer"},
                "inflight_streams": {"type": "integer"},
                "last_stream": {"$ref": "#/definitions/types.StreamStats"}
            }
        },
        "types.ModelStats": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "state": {"type": "string", "example": "ready"},
                "error": {"type": "string"},
                "model_info": {"$ref": "#/definitions/types.ModelInfo"},
                "context_window": {"type": "integer", "example": 2048},
                "threads": {"type": "integer", "example": 8},
                "gpu_layers": {"type": "integer", "example": -1},
                "chat_template": {"type": "string", "example": "llama2"},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "uptime_formatted": {"type": "string", "example": "1h 0m 0s"},
                "generation": {"$ref": "#/definitions/types.GenerationStats"}
            }
        },
        "types.ModelInfoResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/types.ModelStats"}
            }
        },
        "types.SystemInfo": {
            "type": "object",
            "properties": {
                "system": {
                    "type": "object",
                    "properties": {
                        "platform": {"type": "string", "example": "linux"},
                        "arch": {"type": "string", "example": "amd64"},
                        "cpu_count": {"type": "integer", "example": 8},
                        "go_version": {"type": "string", "example": "go1.24.6"}
                    }
                },
                "goroutines": {"type": "integer", "example": 12}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "version": {"type": "string", "example": "0.1.0"},
                "model_status": {"type": "string", "example": "healthy"},
                "model_info": {"$ref": "#/definitions/types.ModelStats"},
                "system_info": {"$ref": "#/definitions/types.SystemInfo"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "chatd API",
	Description:      "Streaming chat completions over a locally loaded llama.cpp model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
