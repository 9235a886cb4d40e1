// Package posts registers the Postboard OpenAPI document with swag.
// Generated by swag; regenerate with: swag init -g internal/posts/http/router.go -o api/posts
package posts

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/postboard"
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
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/postsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/postsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/postsdk.HealthResponse"}}
                }
            }
        },
        "/v1/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "integer", "description": "Page size (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.ListPostsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Create a post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/postsdk.PostResponse"}},
                    "400": {"description": "invalid_request", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}},
                    "401": {"description": "invalid_token", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Get a post",
                "description": "Authors viewing their own post receive a delete_token.",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.PostResponse"}},
                    "404": {"description": "post_not_found", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Posts"],
                "summary": "Delete a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Delete token from GET /v1/posts/{id}", "name": "X-Delete-Token", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "invalid_delete_token", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}},
                    "404": {"description": "post_not_found", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}},
                    "503": {"description": "delete_disabled", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/posts/{id}/delete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Posts"],
                "summary": "Delete a post from a form",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Delete token", "name": "deleteToken", "in": "formData", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "invalid_delete_token", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/posts/{id}/transfer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Posts"],
                "summary": "Transfer a post to another user",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "New owner", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.TransferPostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.PostResponse"}},
                    "403": {"description": "not_post_owner", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Register",
                "parameters": [
                    {"description": "Account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/postsdk.UserResponse"}},
                    "409": {"description": "username_taken", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.UserResponse"}}
                }
            }
        },
        "/v1/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.LoginResponse"}},
                    "401": {"description": "invalid_credentials", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}},
                    "409": {"description": "mfa_required", "schema": {"$ref": "#/definitions/postsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/mfa/totp/enroll": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["MFA"],
                "summary": "Start TOTP enrolment",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/postsdk.TOTPEnrollResponse"}}
                }
            }
        },
        "/v1/mfa/totp/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["MFA"],
                "summary": "Confirm TOTP enrolment",
                "parameters": [
                    {"description": "Code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.TOTPCodeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/mfa/totp": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["MFA"],
                "summary": "Remove TOTP",
                "parameters": [
                    {"description": "Code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/postsdk.TOTPCodeRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "postsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "postsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "display_name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "postsdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "display_name": {"type": "string"},
                "mfa_enabled": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "postsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "otp": {"type": "string"}
            }
        },
        "postsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"$ref": "#/definitions/postsdk.UserResponse"}
            }
        },
        "postsdk.CreatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "postsdk.TransferPostRequest": {
            "type": "object",
            "properties": {
                "new_owner": {"type": "string"}
            }
        },
        "postsdk.PostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "author_id": {"type": "string"},
                "author_username": {"type": "string"},
                "author_display_name": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "delete_token": {"type": "string"}
            }
        },
        "postsdk.ListPostsResponse": {
            "type": "object",
            "properties": {
                "posts": {"type": "array", "items": {"$ref": "#/definitions/postsdk.PostResponse"}}
            }
        },
        "postsdk.TOTPEnrollResponse": {
            "type": "object",
            "properties": {
                "secret": {"type": "string"},
                "otpauth_url": {"type": "string"},
                "issuer": {"type": "string"},
                "account": {"type": "string"}
            }
        },
        "postsdk.TOTPCodeRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}
            }
        },
        "postsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "delete_tokens": {"type": "string"}
            }
        },
        "postsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/postsdk.HealthChecks"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session JWT from POST /v1/sessions. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Postboard API",
	Description:      "A small post board. Authors are offered a short-lived delete token when they view their own\npost; deleting requires sending it back while the author still owns the post.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
