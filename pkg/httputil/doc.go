// Package httputil provides the HTTP plumbing shared by the lodviz API.
//
// # JSON
//
// [DecodeJSON] reads a size-limited request body and reports malformed
// input as an INVALID_INPUT error. [WriteJSON] writes a value with the
// given status, and [WriteError] turns any error into the API error body:
//
//	{"code": "INVALID_MARK", "message": "invalid mark \"radar\" ..."}
//
// The status comes from the error code (see errors.Code.HTTPStatus).
// Errors without a code are reported as INTERNAL_ERROR with a generic
// message so internals do not leak to clients.
//
// # Request IDs
//
// [RequestID] is a middleware that takes a UUID from the X-Request-ID
// header, or generates one, echoes it on the response and stores it in
// the request context for [GetRequestID].
package httputil
