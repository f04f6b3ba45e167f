package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/careerconnect-api/internal/interface/http"
)

// DataModule serves the public browse filters:
// GET /api/data/companies, /api/data/categories, /api/data/locations
type DataModule struct {
	Handler *handlers.CatalogHandler
	Limit   Limiter
}

func NewDataModule(h *handlers.CatalogHandler, lim Limiter) *DataModule {
	return &DataModule{Handler: h, Limit: lim}
}

func (m *DataModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/data")
	g.Use(m.Limit.PerIP(120, time.Minute))
	{
		g.GET("/companies", m.Handler.Companies)
		g.GET("/categories", m.Handler.Categories)
		g.GET("/locations", m.Handler.Locations)
	}
}
