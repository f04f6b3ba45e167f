package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// RecruiterModule wires /api/recruiter/* for callers with the recruiter role.
type RecruiterModule struct {
	Applications *handlers.ApplicationHandler
	Internships  *handlers.InternshipHandler
	Dashboard    *handlers.DashboardHandler
	Auth         gin.HandlerFunc
	Limit        Limiter
}

func NewRecruiterModule(apps *handlers.ApplicationHandler, internships *handlers.InternshipHandler, dash *handlers.DashboardHandler, auth gin.HandlerFunc, lim Limiter) *RecruiterModule {
	return &RecruiterModule{Applications: apps, Internships: internships, Dashboard: dash, Auth: auth, Limit: lim}
}

func (m *RecruiterModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/recruiter")
	g.Use(m.Auth, middleware.RequireRecruiter(), m.Limit.PerUser(120, time.Minute))
	{
		g.GET("/applicants/:internshipId", m.Applications.Applicants)
		g.PATCH("/applications/:applicationId/status", m.Applications.UpdateStatus)
		g.GET("/my-postings", m.Internships.ListMine)
		g.GET("/dashboard/stats", m.Dashboard.Stats)
		g.GET("/dashboard/recent-applicants", m.Dashboard.RecentApplicants)
	}
}
