package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// CandidateModule wires /api/candidate/* for callers with the candidate role.
type CandidateModule struct {
	Applications *handlers.ApplicationHandler
	Profiles     *handlers.ProfileHandler
	Auth         gin.HandlerFunc
	Limit        Limiter
}

func NewCandidateModule(apps *handlers.ApplicationHandler, profiles *handlers.ProfileHandler, auth gin.HandlerFunc, lim Limiter) *CandidateModule {
	return &CandidateModule{Applications: apps, Profiles: profiles, Auth: auth, Limit: lim}
}

func (m *CandidateModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/candidate")
	g.Use(m.Auth, middleware.RequireCandidate(), m.Limit.PerUser(120, time.Minute))
	{
		g.POST("/apply", m.Limit.PerUserAndPath(3, time.Minute), m.Applications.Apply) // 3 req/min per user
		g.GET("/my-applications", m.Applications.MyApplications)
		g.GET("/saved-internships", m.Profiles.Saved)
		g.GET("/notifications", m.Applications.Notifications)
		g.PATCH("/notifications/:id/read", m.Applications.MarkRead)
	}
}
