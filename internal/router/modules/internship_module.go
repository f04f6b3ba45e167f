package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// InternshipModule wires posting routes.
// Public: GET /api/internships, /api/internships/search, /api/internships/:id
// Recruiter: POST /api/internships, PUT and DELETE /api/internships/:id
type InternshipModule struct {
	Handler *handlers.InternshipHandler
	Auth    gin.HandlerFunc
	Limit   Limiter
}

func NewInternshipModule(h *handlers.InternshipHandler, auth gin.HandlerFunc, lim Limiter) *InternshipModule {
	return &InternshipModule{Handler: h, Auth: auth, Limit: lim}
}

func (m *InternshipModule) Register(rg *gin.RouterGroup) {
	public := rg.Group("/internships")
	public.Use(m.Limit.PerIP(120, time.Minute))
	{
		public.GET("", m.Handler.List)
		public.GET("/search", m.Limit.PerIPAndPath(30, time.Minute), m.Handler.Search)
		public.GET("/:id", m.Handler.Get)
	}

	owner := rg.Group("/internships")
	owner.Use(m.Auth, middleware.RequireRecruiter(), m.Limit.PerUser(60, time.Minute))
	{
		owner.POST("", m.Handler.Create)
		owner.PUT("/:id", m.Handler.Update)
		owner.DELETE("/:id", m.Handler.Delete)
	}
}
