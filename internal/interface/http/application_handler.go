package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

type ApplicationHandler struct {
	Svc    *app.ApplicationService
	Logger *logrus.Logger
}

func NewApplicationHandler(svc *app.ApplicationService, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{Svc: svc, Logger: logger}
}

type applyRequest struct {
	InternshipID string `json:"internshipId" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req applyRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Svc.Submit(c.Request.Context(), principal(c).ID, req.InternshipID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "Application submitted successfully!", nil)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "applications fetched", map[string]any{"count": len(list)})
}

func (h *ApplicationHandler) Notifications(c *gin.Context) {
	list, err := h.Svc.Notifications(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "notifications fetched", map[string]any{"count": len(list)})
}

func (h *ApplicationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkNotificationRead(c.Request.Context(), principal(c).ID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": c.Param("id"), "read": true}, "Notification marked as read", nil)
}

func (h *ApplicationHandler) Applicants(c *gin.Context) {
	list, err := h.Svc.ListApplicants(c.Request.Context(), principal(c).ID, c.Param("internshipId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "applicants fetched", map[string]any{"count": len(list)})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	a, changed, err := h.Svc.Transition(c.Request.Context(), principal(c).ID, c.Param("applicationId"), req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Application status updated to "+string(a.Status), map[string]any{"changed": changed})
}
