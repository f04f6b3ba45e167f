package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
)

// NewEngine returns a gin engine with the global middleware chain and every
// module registered under /api.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	trustProxy := d.Config != nil && d.Config.TrustProxyHeaders
	if !trustProxy {
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(trustProxy))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "WWW-Authenticate", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if d.Config != nil && len(d.Config.CORSOrigins()) > 0 {
		corsCfg.AllowOrigins = d.Config.CORSOrigins()
	} else {
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	reg := NewRegistry(r, "/api")
	if d.Config != nil && d.Config.HTTPLogEnabled && d.Logger != nil {
		reg.Use(middleware.AccessLog(d.Logger))
	}
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}
