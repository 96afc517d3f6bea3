package ports

import "github.com/ynov-backend/accounts-api/internal/core/domain"

// TokenIssuer produces signed, time-limited identity tokens.
type TokenIssuer interface {
	Issue(subjectID, role string) (string, error)
}

// TokenVerifier checks signature and expiry and returns the embedded claims.
// Any failure (bad signature, malformed payload, expired) yields
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}
