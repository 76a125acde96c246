package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Event Board",
        "description": "Server rendered event management pages over the events REST API. Every page also answers JSON when requested with Accept: application/json.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Event list, search, filter, create and export"},
        {"name": "Event", "description": "Event detail, edit and delete"},
        {"name": "Ops", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Ops"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Events"],
                "summary": "Event list page",
                "produces": ["text/html", "application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListView"}}
                }
            }
        },
        "/search": {
            "post": {
                "tags": ["Events"],
                "summary": "Search events by title",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "q", "in": "formData", "type": "string", "description": "Title substring, case insensitive"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListView"}}
                }
            }
        },
        "/filter": {
            "post": {
                "tags": ["Events"],
                "summary": "Filter events by category",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "categoryId", "in": "formData", "type": "string", "description": "Category id, empty for all categories"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reset": {
            "post": {
                "tags": ["Events"],
                "summary": "Clear search and category filter",
                "produces": ["text/html", "application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListView"}}
                }
            }
        },
        "/events/new": {
            "get": {
                "tags": ["Events"],
                "summary": "Create event form",
                "produces": ["text/html", "application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventFormView"}}
                }
            }
        },
        "/events": {
            "post": {
                "tags": ["Events"],
                "summary": "Create an event",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventForm"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MutationView"}},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/EventFormView"}},
                    "409": {"description": "Request already in progress"},
                    "502": {"description": "Events API failure"}
                }
            }
        },
        "/events/export/{format}": {
            "get": {
                "tags": ["Events"],
                "summary": "Export the visible events",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/event/{id}": {
            "get": {
                "tags": ["Event"],
                "summary": "Event detail page",
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "confirm", "in": "query", "type": "string", "enum": ["delete"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventDetailView"}},
                    "404": {"description": "Not Found"},
                    "502": {"description": "Events API failure"}
                }
            },
            "patch": {
                "tags": ["Event"],
                "summary": "Update an event",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventForm"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventDetailView"}},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/EventFormView"}},
                    "409": {"description": "Request already in progress"}
                }
            },
            "delete": {
                "tags": ["Event"],
                "summary": "Delete an event",
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted, redirect to the list", "schema": {"$ref": "#/definitions/MutationView"}},
                    "303": {"description": "Redirect to the list"},
                    "409": {"description": "Request already in progress"}
                }
            }
        },
        "/event/{id}/edit": {
            "get": {
                "tags": ["Event"],
                "summary": "Edit event form",
                "produces": ["text/html", "application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventFormView"}}
                }
            }
        }
    },
    "definitions": {
        "Notification": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["success", "error"]},
                "duration": {"type": "integer", "description": "Milliseconds"},
                "isClosable": {"type": "boolean"}
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "location": {"type": "string"},
                "createdBy": {"type": "integer"},
                "categoryIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "EventForm": {
            "type": "object",
            "required": ["title", "description", "image", "startTime", "endTime", "createdBy", "categoryIds"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "startTime": {"type": "string", "example": "2024-06-01T18:00"},
                "endTime": {"type": "string", "example": "2024-06-01T21:00"},
                "location": {"type": "string", "description": "Required on create"},
                "createdBy": {"type": "integer"},
                "categoryIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "EventListView": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"type": "object"}},
                "categories": {"type": "array", "items": {"type": "object"}},
                "criteria": {"type": "object"},
                "loaded": {"type": "integer"},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
            }
        },
        "EventDetailView": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/Event"},
                "confirmDelete": {"type": "boolean"},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
            }
        },
        "EventFormView": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["create", "edit"]},
                "action": {"type": "string"},
                "eventId": {"type": "integer"},
                "form": {"$ref": "#/definitions/EventForm"},
                "categories": {"type": "array", "items": {"type": "object"}},
                "users": {"type": "array", "items": {"type": "object"}},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
            }
        },
        "MutationView": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/Event"},
                "redirect": {"type": "string"},
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/Notification"}}
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
        "ResponseEnvelope": {
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
