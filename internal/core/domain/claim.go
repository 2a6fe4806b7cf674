package domain

import "time"

// TokenLifetime is the fixed validity window of an issued credential.
const TokenLifetime = 8 * time.Hour

// Claim is the verified content of a bearer token. Role and Area are a
// snapshot taken at issuance and are not re-read until the token expires.
type Claim struct {
	TokenID           string
	UserID            int64
	Role              string
	Area              string
	DirectoryUsername string
	IssuedAt          time.Time
	ExpiresAt         time.Time
}
