package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

type DashboardHandler struct {
	Svc    *app.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *app.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard stats fetched", nil)
}

func (h *DashboardHandler) RecentApplicants(c *gin.Context) {
	list, err := h.Svc.RecentApplicants(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "recent applicants fetched", map[string]any{"count": len(list)})
}
