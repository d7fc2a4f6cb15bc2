package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	pkgauth "github.com/clinicore/clinic-api/pkg/auth"
	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/httputil"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

const ContextIdentity = "identity"

type AuthMiddleware struct {
	tokens  pkgauth.TokenService
	revoked repository.TokenStore
}

// NewAuthMiddleware builds the bearer-token gate. revoked may be nil when no
// revocation store is configured.
func NewAuthMiddleware(tokens pkgauth.TokenService, revoked repository.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revoked: revoked}
}

// Authenticate verifies the bearer token and attaches the identity to the
// request context. A missing token is unauthorized; a token that fails
// verification is forbidden.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperr.NewMissingToken())
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithError(c, apperr.NewMissingToken())
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := m.tokens.Validate(token)
		if err != nil {
			httputil.RespondWithError(c, apperr.NewInvalidToken(err))
			c.Abort()
			return
		}

		if m.revoked != nil {
			revoked, err := m.revoked.IsRevoked(c.Request.Context(), token)
			if err != nil {
				httputil.RespondWithError(c, apperr.NewInternal(err))
				c.Abort()
				return
			}
			if revoked {
				httputil.RespondWithError(c, apperr.NewInvalidToken(nil))
				c.Abort()
				return
			}
		}

		c.Set(ContextIdentity, claims)
		c.Next()
	}
}

// RequireRoles rejects authenticated identities whose role is not in the set.
func (m *AuthMiddleware) RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			httputil.RespondWithError(c, apperr.NewMissingToken())
			c.Abort()
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		httputil.RespondWithError(c, apperr.NewForbidden("insufficient permissions"))
		c.Abort()
	}
}

// Identity returns the authenticated identity attached by Authenticate.
func Identity(c *gin.Context) (*model.TokenClaims, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*model.TokenClaims)
	return claims, ok
}
