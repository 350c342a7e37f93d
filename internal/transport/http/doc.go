// Package http implements the HTTP handlers for the datalens API.
// It is a thin layer between transport and business logic: handlers parse
// and validate requests, delegate to services, and render JSON responses.
// Service errors are converted to RFC 7807 problem details by the shared
// error handler.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                              ↓
//	HTTP Response ← render.JSON / problem+json ←─┘
package http
