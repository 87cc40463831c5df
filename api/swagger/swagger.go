package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MentorMind API",
        "description": "Teacher portal backend: classes, rosters, assignments and class engagement metrics.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Login and token introspection"},
        {"name": "Classes", "description": "Classes owned by the caller"},
        {"name": "Assignments", "description": "Assignment creation"},
        {"name": "System", "description": "Health and telemetry"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus exposition",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Profile of the token subject",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserInfo"}},
                    "401": {"description": "Access token required", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List the caller's classes",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ClassWithCounts"}}}
                }
            }
        },
        "/classes/{id}/roster": {
            "get": {
                "tags": ["Classes"],
                "summary": "Students of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RosterEntry"}}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/{id}/assignments": {
            "get": {
                "tags": ["Classes"],
                "summary": "Assignments of a class ordered by due date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AssignmentListItem"}}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/{id}/metrics": {
            "get": {
                "tags": ["Classes"],
                "summary": "Engagement metrics for the trailing week",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Cache": {"type": "string", "description": "HIT or MISS"}},
                        "schema": {"$ref": "#/definitions/ClassMetrics"}
                    },
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/{id}/metrics/export": {
            "get": {
                "tags": ["Classes"],
                "summary": "Download class metrics",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/assignments": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Create an assignment for an owned class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Assignment"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["teacher", "admin"]},
                "schoolId": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/UserInfo"}
            }
        },
        "ClassWithCounts": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "schoolId": {"type": "string"},
                "teacherId": {"type": "string"},
                "studentCount": {"type": "integer"},
                "assignmentCount": {"type": "integer"}
            }
        },
        "RosterEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "AssignmentListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "topic": {"type": "string"},
                "dueAt": {"type": "string", "format": "date-time"},
                "timeEstimateMin": {"type": "integer"}
            }
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "properties": {
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "topic": {"type": "string"},
                "dueAt": {"type": "string", "format": "date-time"},
                "timeEstimateMin": {"type": "integer", "minimum": 1}
            },
            "required": ["classId", "title", "topic", "dueAt", "timeEstimateMin"]
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "classId": {"type": "string"},
                "title": {"type": "string"},
                "topic": {"type": "string"},
                "dueAt": {"type": "string", "format": "date-time"},
                "timeEstimateMin": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "StudentMetrics": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "avgScorePct": {"type": "number"},
                "sessionsThisWeek": {"type": "integer"},
                "avgAccuracyPct": {"type": "number"},
                "recentMood": {"type": "integer", "x-nullable": true}
            }
        },
        "ClassMetricsSummary": {
            "type": "object",
            "properties": {
                "avgAccuracy": {"type": "number"},
                "activeStudents": {"type": "integer"},
                "lowMoodStudents": {"type": "integer"},
                "dueAssignments": {"type": "integer"}
            }
        },
        "ClassMetrics": {
            "type": "object",
            "properties": {
                "metrics": {"type": "array", "items": {"$ref": "#/definitions/StudentMetrics"}},
                "summary": {"$ref": "#/definitions/ClassMetricsSummary"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
