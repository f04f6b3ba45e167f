package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
)

type DebugModule struct {
	Limit Limiter
}

func NewDebugModule(lim Limiter) *DebugModule { return &DebugModule{Limit: lim} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP
	rg.GET("/debug/vars", m.Limit.PerIP(120, time.Minute), gin.WrapH(expvar.Handler()))
}
