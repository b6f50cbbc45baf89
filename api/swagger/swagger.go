package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GPA-CALC API",
        "description": "Single-student class roster with live GPA and credit totals",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Roster", "description": "Class entries, derived GPA and credit totals"},
        {"name": "Draft", "description": "Add/edit form state machine"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/roster": {
            "get": {
                "tags": ["Roster"],
                "summary": "Current roster with derived GPA and credit totals",
                "responses": {
                    "200": {"description": "Roster view", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/roster/save": {
            "post": {
                "tags": ["Roster"],
                "summary": "Explicitly save the roster and return a confirmation",
                "responses": {
                    "200": {"description": "Save acknowledgement", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/roster/entries/{id}": {
            "delete": {
                "tags": ["Roster"],
                "summary": "Delete a class entry (idempotent)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted (or already absent)"}
                }
            }
        },
        "/api/v1/roster/export": {
            "get": {
                "tags": ["Roster"],
                "summary": "Download the roster as a CSV or PDF transcript",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered transcript"}
                }
            }
        },
        "/api/v1/draft": {
            "get": {
                "tags": ["Draft"],
                "summary": "Current draft state",
                "responses": {
                    "200": {"description": "Draft view", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "patch": {
                "tags": ["Draft"],
                "summary": "Patch fields of the open draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated draft view", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "No draft is open"}
                }
            }
        },
        "/api/v1/draft/add": {
            "post": {
                "tags": ["Draft"],
                "summary": "Open an empty draft for a new class",
                "responses": {
                    "200": {"description": "Fresh draft view", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "A draft is already open"}
                }
            }
        },
        "/api/v1/draft/edit/{id}": {
            "post": {
                "tags": ["Draft"],
                "summary": "Open a draft prefilled from an existing entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Prefilled draft view", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Entry not found"},
                    "409": {"description": "A draft is already open"}
                }
            }
        },
        "/api/v1/draft/submit": {
            "post": {
                "tags": ["Draft"],
                "summary": "Commit the open draft",
                "responses": {
                    "200": {"description": "Roster view after mutation", "schema": {"$ref": "#/definitions/Envelope"}},
                    "204": {"description": "Silent no-op: draft closed or incomplete"}
                }
            }
        },
        "/api/v1/draft/cancel": {
            "post": {
                "tags": ["Draft"],
                "summary": "Discard the open draft",
                "responses": {
                    "204": {"description": "Draft discarded"}
                }
            }
        }
    },
    "definitions": {
        "UpdateDraftRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "grade": {"type": "string", "enum": ["A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D", "F"]},
                "credits": {"type": "integer", "minimum": 1, "maximum": 6},
                "term": {"type": "string", "enum": ["Fall", "Spring", "Summer", "Winter"]},
                "year": {"type": "string", "minLength": 2, "maxLength": 2}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
