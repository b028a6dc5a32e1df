package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "StudyTracker API Documentation",
        "title": "StudyTracker API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Account Signup",
                "description": "Create an account with username, password and confirmation",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "account",
                        "description": "Signup form",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string",
                                    "example": "alex"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "secret"
                                },
                                "confirmPassword": {
                                    "type": "string",
                                    "example": "secret"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created"
                    },
                    "400": {
                        "description": "Passwords do not match"
                    },
                    "409": {
                        "description": "Username already taken"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with username and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string",
                                    "example": "alex"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "secret"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/api/v1/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List Tasks",
                "description": "List the user's tasks filtered by search, subject, priority and status, sorted by dueDate, priority, subject or created",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Task list"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create Task",
                "description": "Create a study task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Task created"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/api/v1/timer/start": {
            "post": {
                "tags": ["Timer"],
                "summary": "Start Study Timer",
                "description": "Start a countdown for a task using its estimated time",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Timer started"
                    },
                    "409": {
                        "description": "A timer is already running"
                    }
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Task Counters",
                "description": "Headline counters over the user's tasks",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Stats"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the session token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "StudyTracker API",
	Description:      "StudyTracker API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
