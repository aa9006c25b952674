package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Nomadly Itinerary API",
        "description": "Trip day-schedule construction and conflict-free time windows",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Account registration and login"},
        {"name": "Trips", "description": "Trip lifecycle"},
        {"name": "Days", "description": "Trip days and fixed windows"},
        {"name": "POIs", "description": "Point-of-interest catalog"},
        {"name": "Itinerary", "description": "Schedule generation, agenda editing and export"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current account profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips": {
            "get": {
                "tags": ["Trips"],
                "summary": "List the caller's trips",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Trips"],
                "summary": "Create a trip with its day rows",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTripRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid day window or timezone"}
                }
            }
        },
        "/trips/{id}": {
            "get": {
                "tags": ["Trips"],
                "summary": "Get a trip",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Trips"],
                "summary": "Update trip fields",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTripRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Trips"],
                "summary": "Delete a trip",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/trips/{id}/days": {
            "get": {
                "tags": ["Itinerary"],
                "summary": "List a trip's days with fixed windows and agenda items",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/generate": {
            "post": {
                "tags": ["Itinerary"],
                "summary": "Regenerate the full schedule of a trip",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "async", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "202": {"description": "Queued"}
                }
            }
        },
        "/trips/{id}/itinerary": {
            "get": {
                "tags": ["Itinerary"],
                "summary": "Read the full day-by-day schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/export": {
            "get": {
                "tags": ["Itinerary"],
                "summary": "Export a trip's schedule as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/days/{dayId}": {
            "patch": {
                "tags": ["Days"],
                "summary": "Update a trip day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/days/{dayId}/fixed-windows": {
            "get": {
                "tags": ["Days"],
                "summary": "List a day's fixed windows",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "dayId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Days"],
                "summary": "Pin a fixed window onto a day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFixedWindowRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid time range"}
                }
            }
        },
        "/days/{dayId}/fixed-windows/{windowId}": {
            "delete": {
                "tags": ["Days"],
                "summary": "Remove a fixed window",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "windowId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/days/{dayId}/free-segments": {
            "get": {
                "tags": ["Itinerary"],
                "summary": "Compute the schedulable gaps of a day",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "dayId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid day window or timezone"}
                }
            }
        },
        "/days/{dayId}/materialize": {
            "post": {
                "tags": ["Itinerary"],
                "summary": "Lay a proposed plan out on a day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RawPlan"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Time conflict"}
                }
            }
        },
        "/days/{dayId}/agenda": {
            "post": {
                "tags": ["Itinerary"],
                "summary": "Manually place a single visit",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAgendaItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Time conflict"}
                }
            }
        },
        "/days/{dayId}/agenda/{itemId}": {
            "delete": {
                "tags": ["Itinerary"],
                "summary": "Remove a scheduled visit",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "dayId", "in": "path", "required": true, "type": "string"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/pois": {
            "get": {
                "tags": ["POIs"],
                "summary": "List catalog entries",
                "parameters": [
                    {"name": "city", "in": "query", "type": "string"},
                    {"name": "district", "in": "query", "type": "string"},
                    {"name": "tag", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pois/{id}": {
            "get": {
                "tags": ["POIs"],
                "summary": "Get a catalog entry",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateTripRequest": {
            "type": "object",
            "required": ["title", "startDate", "endDate"],
            "properties": {
                "title": {"type": "string"},
                "city": {"type": "string"},
                "destTz": {"type": "string"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "pace": {"type": "string", "enum": ["relax", "normal", "max"]},
                "dayStart": {"type": "string", "example": "09:30"},
                "dayEnd": {"type": "string", "example": "20:30"},
                "budget": {"type": "string", "enum": ["dollar", "dollarDollar", "dollarDollarDollar"]},
                "mealPlan": {"type": "string", "enum": ["light", "standard", "food_focused"]},
                "interests": {"type": "object"},
                "cuisines": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateTripRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "city": {"type": "string"},
                "destTz": {"type": "string"},
                "pace": {"type": "string"},
                "dayStart": {"type": "string"},
                "dayEnd": {"type": "string"},
                "budget": {"type": "string"},
                "mealPlan": {"type": "string"}
            }
        },
        "UpdateDayRequest": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "areaFocus": {"type": "array", "items": {"type": "string"}},
                "theme": {"type": "string"}
            }
        },
        "CreateFixedWindowRequest": {
            "type": "object",
            "required": ["title", "startAt", "endAt"],
            "properties": {
                "title": {"type": "string"},
                "startAt": {"type": "string", "format": "date-time"},
                "endAt": {"type": "string", "format": "date-time"},
                "location": {"type": "string"}
            }
        },
        "CreateAgendaItemRequest": {
            "type": "object",
            "required": ["poiId", "startAt", "endAt", "mode"],
            "properties": {
                "poiId": {"type": "string"},
                "startAt": {"type": "string", "format": "date-time"},
                "endAt": {"type": "string", "format": "date-time"},
                "mode": {"type": "string", "enum": ["location_aware", "activity_focused"]},
                "locked": {"type": "boolean"}
            }
        },
        "RawPlan": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "poiId": {"type": "string"},
                            "durationMinutes": {"type": "integer"},
                            "isMeal": {"type": "boolean"},
                            "notes": {"type": "string"}
                        }
                    }
                },
                "reasoning": {"type": "string"}
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
