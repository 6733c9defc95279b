// Package handler implements the HTTP API for sdntopo.
//
// # Handlers
//
// TopologyHandler serves the live graph, controller status, renderer
// positions, exports and a manual poll trigger.
//
// Middleware provides panic recovery, CORS and request logging.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 202).
// Error responses return JSON with {error, details} structure.
//
// # Server-Sent Events
//
// The /events endpoint is served by the hub package; it streams the same
// topology, controller and position events the handlers expose.
package handler
