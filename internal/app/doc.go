// Package app wires the dashboard application together: configuration,
// logging, the query store, the service layer, the chi router with its
// middleware chain, and the HTTP server lifecycle.
package app
