// Package common contains shared constants and sentinel errors used across
// accountkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SystemActor is the attribution recorded when no authenticated account
// performs a change (e.g. admin bootstrap).
const SystemActor = "System"

// Role names carried in issued tokens.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)
