// Package auth holds the authentication core of the server: password
// hashing, issuing and verifying bearer tokens, and resolving a request's
// Authorization header to a principal.
package auth
