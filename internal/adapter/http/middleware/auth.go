package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/auth"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/pkg"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)
	errForbidden       = pkg.NewDomainErrorSimple("FORBIDDEN", "Your role is not allowed to perform this operation", http.StatusForbidden)
)

// TokenParser validates an access token.
type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and stores
// the caller for the handlers.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.FromContext(c.Request.Context())

		scheme, token, ok := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			logger.Warn("authorization header missing or malformed")
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		p, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		c.Set(principalKey, p)
		enriched := logger.With(slog.String("user", p.Username), slog.String("role", string(p.Role)))
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), enriched))
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by Authenticate.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// RequireRoles lets only the listed roles through.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return roleGate(func(r entities.Role) bool { return slices.Contains(roles, r) })
}

// DenyRoles rejects the listed roles with 403 before the handler runs, so the
// record is left untouched.
func DenyRoles(roles ...entities.Role) gin.HandlerFunc {
	return roleGate(func(r entities.Role) bool { return !slices.Contains(roles, r) })
}

func roleGate(allowed func(entities.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		if !allowed(p.Role) {
			logging.FromContext(c.Request.Context()).Warn("role denied",
				slog.String("role", string(p.Role)),
				slog.String("route", c.FullPath()),
			)
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}
