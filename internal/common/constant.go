package common

const (
	// AuthorizationHeaderName carries the admin bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header value.
	BearerPrefix = "Bearer "

	// TokenMetadataKey is the key under which the client persists the bearer token.
	TokenMetadataKey = "token"
)
