package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// ProfileModule wires GET/PUT /api/profile/me for any profile and the
// candidate-only save and resume routes.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
	Limit   Limiter
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc, lim Limiter) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth, Limit: lim}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/profile")
	g.Use(m.Auth, m.Limit.PerUser(120, time.Minute))
	{
		g.GET("/me", m.Handler.Me)
		g.PUT("/me", m.Handler.UpdateMe)
	}

	cand := g.Group("")
	cand.Use(middleware.RequireCandidate())
	{
		cand.POST("/save/:internshipId", m.Handler.ToggleSaved)
		cand.POST("/resume", m.Limit.PerUserAndPath(10, time.Minute), m.Handler.UploadResume)
	}
}
