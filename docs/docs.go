// Package docs registers the OpenAPI description served at /swagger/*.
// It is maintained by hand alongside the @Router annotations on the JSON
// handlers; regenerating it with swag init produces the same layout.
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
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "posts"
                ],
                "summary": "List posts",
                "responses": {
                    "200": {
                        "description": "index page"
                    }
                }
            }
        },
        "/about": {
            "get": {
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "pages"
                ],
                "summary": "About page",
                "responses": {
                    "200": {
                        "description": "about page"
                    }
                }
            }
        },
        "/api/ping": {
            "get": {
                "description": "Returns pong once the database and the session cache both answer",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.PingResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/contact": {
            "get": {
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "pages"
                ],
                "summary": "Contact page",
                "responses": {
                    "200": {
                        "description": "contact page"
                    },
                    "302": {
                        "description": "Redirect to /login when not logged in"
                    }
                }
            }
        },
        "/delete/{post_id}": {
            "get": {
                "tags": [
                    "posts"
                ],
                "summary": "Delete post",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Post ID",
                        "name": "post_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "302": {
                        "description": "Redirect to /"
                    },
                    "403": {
                        "description": "not an admin"
                    },
                    "404": {
                        "description": "no such post"
                    }
                }
            }
        },
        "/edit-post/{post_id}": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "posts"
                ],
                "summary": "Edit post",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Post ID",
                        "name": "post_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Title (unique)",
                        "name": "title",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Subtitle",
                        "name": "subtitle",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Cover image URL",
                        "name": "img_url",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Body (HTML)",
                        "name": "body",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to /post/{post_id}"
                    },
                    "400": {
                        "description": "Editor re-rendered with field errors"
                    },
                    "403": {
                        "description": "not an admin"
                    },
                    "404": {
                        "description": "no such post"
                    },
                    "409": {
                        "description": "title already used"
                    }
                }
            }
        },
        "/login": {
            "post": {
                "description": "Verifies email and password and sets the session cookie. Every failure redirects back to /login with a message.",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Email",
                        "name": "email",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Password",
                        "name": "password",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to /"
                    },
                    "400": {
                        "description": "Form re-rendered with field errors"
                    }
                }
            }
        },
        "/logout": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Log out",
                "responses": {
                    "302": {
                        "description": "Redirect to /"
                    }
                }
            }
        },
        "/new-post": {
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "posts"
                ],
                "summary": "Create post",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Title (unique)",
                        "name": "title",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Subtitle",
                        "name": "subtitle",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Cover image URL",
                        "name": "img_url",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Body (HTML)",
                        "name": "body",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to /"
                    },
                    "400": {
                        "description": "Editor re-rendered with field errors"
                    },
                    "403": {
                        "description": "not an admin"
                    },
                    "409": {
                        "description": "title already used"
                    }
                }
            }
        },
        "/post/{post_id}": {
            "get": {
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "posts"
                ],
                "summary": "Show post",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Post ID",
                        "name": "post_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "post page"
                    },
                    "404": {
                        "description": "no such post"
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "posts"
                ],
                "summary": "Comment on a post",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Post ID",
                        "name": "post_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Comment (HTML)",
                        "name": "comment",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to / (or /login when not logged in)"
                    },
                    "400": {
                        "description": "Post re-rendered with field errors"
                    },
                    "404": {
                        "description": "no such post"
                    }
                }
            }
        },
        "/register": {
            "post": {
                "description": "Creates an account with a hashed password and starts a session. A duplicate email redirects to /login.",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "produces": [
                    "text/html"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Register",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Email",
                        "name": "email",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Password (8-72 characters)",
                        "name": "password",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Display name",
                        "name": "name",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to / (or /login when the email is taken)"
                    },
                    "400": {
                        "description": "Form re-rendered with field errors"
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "database unhealthy"
                }
            }
        },
        "api.PingResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "pong"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Personal Blog",
	Description:      "Server-rendered personal blog: posts, comments and accounts. Form routes answer with HTML pages or redirects.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
