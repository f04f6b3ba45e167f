package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

type CatalogHandler struct {
	Svc    *app.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *app.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func (h *CatalogHandler) Companies(c *gin.Context) {
	list, err := h.Svc.Companies(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "companies fetched", map[string]any{"count": len(list)})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	list, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "categories fetched", map[string]any{"count": len(list)})
}

func (h *CatalogHandler) Locations(c *gin.Context) {
	list, err := h.Svc.Locations(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "locations fetched", map[string]any{"count": len(list)})
}
