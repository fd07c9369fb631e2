// Package client is the CLI's view of the TravelMate server.
//
// HTTPClient wraps the REST API: it sends the bearer token, tags each
// request with an X-Request-Id, and unpacks the {success, message, data}
// envelope. Non-2xx replies become *APIError, which matches ErrUnauthorized
// and ErrNotFound with errors.Is. Transport failures wrap ErrUnavailable.
//
// CheckHealth probes the gRPC health service the server runs next to the
// REST API.
package client
