// Package api is the HTTP client shared by the client applications.
//
// Every request carries the bearer token read from client storage and a
// per-client request id. Idempotent requests are retried on network
// failures and on 429 or 5xx responses. Non-2xx responses surface as
// *ResponseError, which HandleError turns into an error notification.
package api
