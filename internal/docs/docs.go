// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Se mantiene a mano en línea con los comentarios @Router de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/users/register": {
            "post": {
                "tags": ["users"], "summary": "Registrar usuario (rol staff)",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.registerRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/users.AuthResult"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"], "summary": "Login",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.loginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/users.AuthResult"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}
            }
        },
        "/users/me": {
            "get": {"tags": ["users"], "summary": "Perfil del usuario autenticado", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["users"], "summary": "Actualizar perfil", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{userID}/role": {
            "put": {"tags": ["users"], "summary": "Cambiar rol (solo admin)", "parameters": [{"in": "path", "name": "userID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Listar mascotas", "parameters": [{"in": "query", "name": "owner_id", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Ver mascota", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["pets"], "summary": "Editar mascota", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota (solo admin)", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}}
        },
        "/pets/{petID}/treatments": {
            "get": {"tags": ["treatments"], "summary": "Listar tratamientos", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["treatments"], "summary": "Registrar tratamiento", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}], "responses": {"201": {"description": "Created"}}}
        },
        "/pets/{petID}/treatments/{treatmentID}": {
            "delete": {"tags": ["treatments"], "summary": "Borrar tratamiento (solo admin)", "parameters": [{"in": "path", "name": "petID", "required": true, "type": "string"}, {"in": "path", "name": "treatmentID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}}
        },
        "/appointments": {
            "get": {"tags": ["appointments"], "summary": "Listar citas", "parameters": [{"in": "query", "name": "user_id", "type": "string"}, {"in": "query", "name": "pet_id", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["appointments"], "summary": "Crear cita completa", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/appointments/{appointmentID}": {
            "get": {"tags": ["appointments"], "summary": "Ver cita", "parameters": [{"in": "path", "name": "appointmentID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["appointments"], "summary": "Editar cita", "parameters": [{"in": "path", "name": "appointmentID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["appointments"], "summary": "Borrar cita", "parameters": [{"in": "path", "name": "appointmentID", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.MessageResponse"}}}}
        }
    },
    "definitions": {
        "httpx.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "users.registerRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {"name": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "position": {"type": "string"}, "address": {"type": "string"}}},
        "users.loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "users.AuthResult": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"type": "object"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Clinic Records API",
	Description:      "Usuarios, mascotas, tratamientos y citas de la clínica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
