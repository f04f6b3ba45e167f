package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

type InternshipHandler struct {
	Svc    *app.InternshipService
	Logger *logrus.Logger
}

func NewInternshipHandler(svc *app.InternshipService, logger *logrus.Logger) *InternshipHandler {
	return &InternshipHandler{Svc: svc, Logger: logger}
}

func (h *InternshipHandler) List(c *gin.Context) {
	list, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "internships fetched", map[string]any{"count": len(list)})
}

func (h *InternshipHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "search results", map[string]any{"count": len(list)})
}

func (h *InternshipHandler) Get(c *gin.Context) {
	i, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, i, "internship fetched", nil)
}

func (h *InternshipHandler) Create(c *gin.Context) {
	var in app.InternshipInput
	if !bindJSON(c, &in) {
		return
	}
	i, err := h.Svc.Create(c.Request.Context(), principal(c).ID, in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, i, "Internship created successfully", nil)
}

func (h *InternshipHandler) Update(c *gin.Context) {
	var in app.InternshipInput
	if !bindJSON(c, &in) {
		return
	}
	i, err := h.Svc.Update(c.Request.Context(), principal(c).ID, c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, i, "Internship updated successfully", nil)
}

func (h *InternshipHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), principal(c).ID, c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": c.Param("id")}, "Internship deleted successfully", nil)
}

func (h *InternshipHandler) ListMine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "postings fetched", map[string]any{"count": len(list)})
}
