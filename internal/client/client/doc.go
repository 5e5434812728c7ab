// Package client talks to the TaskFlow REST API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI services:
// Register/Login return a bearer token, Me and the task calls take one.
// HTTPClient implements it over net/http and JSON.
//
// # Error Handling
//
// Transport failures match ErrUnavailable, 401 responses match
// ErrUnauthorized. Every other non-2xx response is an *APIError carrying the
// status code, the server message and any per-field validation messages.
package client
