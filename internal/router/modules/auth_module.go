package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// AuthModule exposes profile registration for a verified token that has no
// profile yet: POST /api/auth/register
type AuthModule struct {
	Handler  *handlers.ProfileHandler
	Verifier middleware.TokenVerifier
	Limit    Limiter
}

func NewAuthModule(h *handlers.ProfileHandler, v middleware.TokenVerifier, lim Limiter) *AuthModule {
	return &AuthModule{Handler: h, Verifier: v, Limit: lim}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register",
		m.Limit.PerIPAndPath(10, time.Minute), // 10 req/min per IP
		middleware.Identity(m.Verifier),
		m.Handler.Register,
	)
}
