package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

// Module is one feature's set of routes under the API prefix.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under one prefix group.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

// Use adds middleware that runs for every module route but not for
// unmatched paths.
func (r *Registry) Use(mw ...gin.HandlerFunc) { r.shared = append(r.shared, mw...) }

func (r *Registry) Add(mod Module) { r.modules = append(r.modules, mod) }

// RegisterAll mounts every added module and answers unknown routes with the
// JSON error envelope.
func (r *Registry) RegisterAll() {
	r.API.Use(r.shared...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, apperror.KindNotFound.Code(), "route not found", nil)
	})
}
