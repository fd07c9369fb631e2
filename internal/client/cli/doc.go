// Package cli implements the travelmate command-line client.
//
// Commands map onto the REST API: register, login, logout and whoami
// manage the account; trips, expenses, images and comments work on the
// caller's data; status probes the REST and gRPC health endpoints. The
// login token is kept in a local SQLite session file, so later commands
// run authenticated until logout or until the token expires.
//
// Output is a table by default or JSON with --output json.
package cli
