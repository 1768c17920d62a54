package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CampusGrid Timetable API",
        "description": "Timetable generation, approval and export service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetables", "description": "Candidate generation and approval"},
        {"name": "Exports", "description": "PDF and CSV downloads"}
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
        "/timetables/generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate timetable candidates",
                "description": "Builds one candidate per strategy (Optimal, Balanced, Flexible). Candidates stay available for approval until their TTL expires.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approve": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Approve a generated candidate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApproveTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Candidate not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approved": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List approved timetables",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approved/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get one approved timetable",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approved/{id}/pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download timetable as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approved/{id}/csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download timetable as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV document"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/approved/{id}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a background PDF export",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/exports/{jobId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export job status",
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubjectRequest": {
            "type": "object",
            "required": ["id", "name", "sessionsPerWeek"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "sessionsPerWeek": {"type": "integer", "minimum": 1},
                "durationMinutes": {"type": "integer"},
                "kind": {"type": "string", "enum": ["lecture", "practical", "lab"]},
                "instructor": {"type": "string"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "required": ["subjects"],
            "properties": {
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/SubjectRequest"}},
                "department": {"type": "string"},
                "semester": {"type": "string"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "17:00"},
                "lunchBreak": {"type": "string", "example": "13:00-14:00"},
                "workingDays": {"type": "array", "items": {"type": "string"}},
                "rooms": {"type": "array", "items": {"type": "string"}},
                "instructors": {"type": "array", "items": {"type": "string"}},
                "maxSessionsPerDay": {"type": "integer"}
            }
        },
        "ApproveTimetableRequest": {
            "type": "object",
            "required": ["candidateId", "title"],
            "properties": {
                "candidateId": {"type": "string"},
                "title": {"type": "string"},
                "department": {"type": "string"},
                "term": {"type": "string"}
            }
        },
        "ScheduledSession": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "time_slot": {"type": "string"},
                "subject": {"type": "string"},
                "instructor": {"type": "string"},
                "room": {"type": "string"},
                "kind": {"type": "string"}
            }
        },
        "ScheduleMetrics": {
            "type": "object",
            "properties": {
                "utilization": {"type": "integer"},
                "efficiency": {"type": "integer"},
                "conflicts": {"type": "integer"},
                "score": {"type": "integer"}
            }
        },
        "ExportJobView": {
            "type": "object",
            "properties": {
                "jobId": {"type": "string"},
                "scheduleId": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "DONE", "FAILED"]},
                "file": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
