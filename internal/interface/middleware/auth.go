package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/helpers"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxIdentityKey  = "identity"
	CtxPrincipalKey = "principal"
)

// TokenVerifier checks a raw bearer token with the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*helpers.Identity, error)
}

// PrincipalResolver maps a verified subject onto its profile.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, id string) (*entity.Principal, error)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	response.Error[any](c, http.StatusUnauthorized, apperror.KindUnauthorized.Code(), message, nil)
}

// Identity verifies the bearer token and stores the identity. It does not
// require a profile, so it guards registration.
func Identity(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		id, err := v.Verify(c.Request.Context(), raw)
		if err != nil {
			unauthorized(c, "invalid bearer token")
			return
		}
		c.Set(CtxIdentityKey, id)
		c.Set(CtxUserIDKey, id.Subject)
		c.Next()
	}
}

// Auth verifies the bearer token and resolves the caller's profile on
// every request.
func Auth(v TokenVerifier, resolver PrincipalResolver, logger *logrus.Logger) gin.HandlerFunc {
	verify := Identity(v)
	return func(c *gin.Context) {
		verify(c)
		if c.IsAborted() {
			return
		}
		p, err := resolver.ResolvePrincipal(c.Request.Context(), c.GetString(CtxUserIDKey))
		if err != nil {
			kind := apperror.KindOf(err)
			if kind == apperror.KindInternal && logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("resolve principal failed")
			}
			msg := "internal server error"
			if kind != apperror.KindInternal {
				msg = err.Error()
			}
			response.Error[any](c, kind.HTTPStatus(), kind.Code(), msg, nil)
			return
		}
		c.Set(CtxPrincipalKey, p)
		c.Next()
	}
}

// RequireRole lets only callers with one of roles through.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			unauthorized(c, "authentication required")
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, apperror.KindForbidden.Code(), "Access denied. "+string(roles[0])+" role required.", nil)
	}
}

func RequireCandidate() gin.HandlerFunc { return RequireRole(entity.RoleCandidate) }
func RequireRecruiter() gin.HandlerFunc { return RequireRole(entity.RoleRecruiter) }

func PrincipalFrom(c *gin.Context) (*entity.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*entity.Principal)
	return p, ok && p != nil
}

func IdentityFrom(c *gin.Context) (*helpers.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*helpers.Identity)
	return id, ok && id != nil
}
