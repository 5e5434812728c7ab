// Package common contains shared constants and sentinel errors used across
// TaskFlow components.
package common

// AccessTokenHeaderName is the fallback HTTP header carrying the access token
// when the Authorization header is not used.
const AccessTokenHeaderName = "X-Auth-Token"
