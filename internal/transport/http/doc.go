// Package http contains the HTTP handlers for the dashboard API. Handlers
// follow chi conventions: each handler type exposes a Routes() method that
// returns a chi.Router mounted by the application, and responses are rendered
// with go-chi/render.
package http
