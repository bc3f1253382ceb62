// Package middleware provides HTTP middleware for the MCP EKS server.
// These middleware functions handle security headers, CORS, API key
// authentication, request metrics, and other cross-cutting concerns.
package middleware
