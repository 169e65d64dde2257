package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EventPulse API",
        "description": "Event discovery and booking API",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Events", "description": "Event catalogue"},
        {"name": "Bookings", "description": "Event bookings"},
        {"name": "Observability", "description": "Runtime stats"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Store unavailable"}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "parameters": [
                    {"name": "mode", "in": "query", "type": "string", "enum": ["online", "offline", "hybrid"]},
                    {"name": "tag", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "409": {"description": "Duplicate slug"}
                }
            }
        },
        "/api/v1/events/{slug}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event detail by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid or missing slug"},
                    "404": {"description": "Event not found"}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Event not found"},
                    "409": {"description": "Duplicate slug"}
                }
            }
        },
        "/api/v1/events/{slug}/similar": {
            "get": {
                "tags": ["Events"],
                "summary": "List events sharing at least one tag",
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK (empty list when the event is unknown)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/{slug}/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List attendees for an event",
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Event not found"}
                }
            }
        },
        "/api/v1/events/{slug}/bookings/export": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Export an event's attendee list",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "slug", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "Event not found"}
                }
            }
        },
        "/api/v1/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a spot for an event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or email"},
                    "404": {"description": "Referenced event does not exist"},
                    "409": {"description": "Duplicate booking for this event and email"}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "tags": ["Observability"],
                "summary": "Runtime stats snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 100},
                "description": {"type": "string", "maxLength": 1000},
                "overview": {"type": "string", "maxLength": 500},
                "image": {"type": "string"},
                "venue": {"type": "string"},
                "location": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "mode": {"type": "string", "enum": ["online", "offline", "hybrid"]},
                "audience": {"type": "string"},
                "agenda": {"type": "array", "items": {"type": "string"}, "minItems": 1},
                "organizer": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}, "minItems": 1}
            },
            "required": ["title", "description", "overview", "image", "venue", "location", "date", "time", "mode", "audience", "agenda", "organizer", "tags"]
        },
        "UpdateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 100},
                "description": {"type": "string", "maxLength": 1000},
                "overview": {"type": "string", "maxLength": 500},
                "image": {"type": "string"},
                "venue": {"type": "string"},
                "location": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "mode": {"type": "string", "enum": ["online", "offline", "hybrid"]},
                "audience": {"type": "string"},
                "agenda": {"type": "array", "items": {"type": "string"}},
                "organizer": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "email": {"type": "string"}
            },
            "required": ["event_id", "email"]
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
