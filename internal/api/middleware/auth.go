package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ynov-backend/accounts-api/internal/api/metrics"
	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
)

// Context keys under which the auth middleware stores the caller identity.
const (
	PrincipalKey = "principal"
	RoleKey      = "role"
)

// Auth authenticates the request: it extracts the bearer token, verifies it,
// and resolves the subject against the user store (through the lookaside
// cache when one is wired). On success a domain.Principal lands in the
// context; every failure short-circuits with 401.
func Auth(tokens ports.TokenVerifier, users ports.UserRepository, cache ports.UserCache, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := resolveSubject(c, claims.ID, users, cache, log)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidUserID) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			// The store is authoritative for the role; the token's role claim
			// can be stale.
			c.Set(PrincipalKey, domain.Principal{ID: user.ID, Role: user.Role})
			c.Set(RoleKey, user.Role)

			return next(c)
		}
	}
}

// resolveSubject looks the subject up in the cache first, then the store.
// Cache failures degrade to a plain store lookup.
func resolveSubject(c echo.Context, id string, users ports.UserRepository, cache ports.UserCache, log zerolog.Logger) (*domain.User, error) {
	ctx := c.Request().Context()

	if cache != nil {
		cached, err := cache.Get(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("user_id", id).Msg("principal cache lookup failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, user); err != nil {
			log.Warn().Err(err).Str("user_id", id).Msg("failed to cache principal")
		}
	}
	return user, nil
}

// CallerPrincipal extracts the principal stored by Auth. The zero value is
// returned when the middleware did not run.
func CallerPrincipal(c echo.Context) domain.Principal {
	p, _ := c.Get(PrincipalKey).(domain.Principal)
	return p
}
