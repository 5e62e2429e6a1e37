// Package api is the HTTP adapter of the service. Handlers decode and
// validate JSON requests, call the account and idea services, and map
// service errors to status codes and sanitized messages.
//
// Authenticated handlers read the user ID placed in the request context by
// middleware.AuthMiddleware; they never parse tokens themselves.
package api
