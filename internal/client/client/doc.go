// Package client is the gRPC client for the DocuSage server.
//
// GRPCClient keeps the access token returned by Register or Login and sends
// it as "authorization: Bearer <token>" on every call. gRPC status codes are
// mapped to the sentinel errors in errors.go so callers can match them with
// errors.Is.
package client
