package domain

import "time"

// TokenKind differentiates access and refresh JWTs.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "ACCESS"
	TokenKindRefresh TokenKind = "REFRESH"
)

// RefreshToken is the stored copy of an issued refresh token.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
