package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies stateless HS256 JWTs carrying the subject
// ID and role. Validity is determined purely by signature and expiry; there
// is no server-side session table and no revocation before expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token encoding {sub, role, exp = now + ttl}.
func (s *TokenService) Issue(subjectID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded principal.
// Every failure mode collapses to domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{ID: sub, Role: role}, nil
}
