package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// DateLayout is the wire format of calendar dates (trip start/end, expense date).
const DateLayout = "2006-01-02"
