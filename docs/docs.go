// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/groups": {
            "post": {"summary": "Create a group", "tags": ["groups"], "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "created"}, "400": {"description": "invalid input"}}}
        },
        "/groups/{groupID}": {
            "get": {"summary": "Get a group", "tags": ["groups"],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "group"}, "404": {"description": "not found"}}}
        },
        "/groups/{groupID}/participants": {
            "get": {"summary": "List the seeded roster", "tags": ["participants"],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "participants ordered by seed"}}},
            "post": {"summary": "Add a participant", "tags": ["participants"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"201": {"description": "created"}, "409": {"description": "seed taken"}}}
        },
        "/participants/{participantID}/withdrawal": {
            "patch": {"summary": "Record or clear a withdrawal", "tags": ["participants"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "participantID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "participant"}, "404": {"description": "not found"}}}
        },
        "/groups/{groupID}/schedule": {
            "post": {"summary": "Generate the round-robin schedule", "tags": ["schedule"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"201": {"description": "fixtures"}, "409": {"description": "results already recorded"}, "422": {"description": "roster cannot be scheduled"}}}
        },
        "/groups/{groupID}/games": {
            "get": {"summary": "List fixtures", "tags": ["schedule"],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "fixtures ordered by round and board"}}}
        },
        "/groups/{groupID}/standings": {
            "get": {"summary": "Ranked table", "tags": ["standings"],
                "parameters": [
                    {"name": "groupID", "in": "path", "required": true, "type": "integer"},
                    {"name": "round", "in": "query", "required": false, "type": "integer", "description": "only rounds 1..round; 0 or absent takes every round"}
                ],
                "responses": {"200": {"description": "standings"}}}
        },
        "/groups/{groupID}/export/{format}": {
            "get": {"summary": "Rating report export", "tags": ["reports"], "security": [{"BearerAuth": []}],
                "produces": ["text/plain", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "groupID", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["dwz", "fide", "xlsx"]}
                ],
                "responses": {"200": {"description": "report file"}, "409": {"description": "two games on one date"}, "422": {"description": "group metadata incomplete"}}}
        },
        "/games/{gameID}/result": {
            "patch": {"summary": "Record a result", "tags": ["games"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "gameID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "game"}, "400": {"description": "unknown result"}}}
        },
        "/games/{gameID}/date": {
            "patch": {"summary": "Reschedule a game", "tags": ["games"], "security": [{"BearerAuth": []}],
                "parameters": [{"name": "gameID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "game"}}}
        },
        "/ws/groups/{groupID}": {
            "get": {"summary": "Live updates of a group over a websocket", "tags": ["realtime"],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"101": {"description": "switching protocols"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Chess League API",
	Description:      "Round-robin scheduling, standings and rating report exports for chess groups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
