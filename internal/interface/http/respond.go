package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/response"
	"github.com/oksasatya/careerconnect-api/pkg/validation"
)

const genericInternalMessage = "Something went wrong. Please try again later."

// respondError writes err as an error envelope. Internal causes are only
// logged; the caller sees a generic message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		if logger != nil {
			fields := logrus.Fields{"request_id": c.GetString("request_id"), "path": c.FullPath()}
			if uid := c.GetString(middleware.CtxUserIDKey); uid != "" {
				fields["user_id"] = uid
			}
			logger.WithFields(fields).WithError(err).Error("request failed")
		}
		response.Error[any](c, kind.HTTPStatus(), kind.Code(), genericInternalMessage, nil)
		return
	}
	var ae *apperror.Error
	var details any
	msg := err.Error()
	if errors.As(err, &ae) {
		msg = ae.Message
		if len(ae.Details) > 0 {
			details = ae.Details
		}
	}
	response.Error[any](c, kind.HTTPStatus(), kind.Code(), msg, details)
}

// bindJSON binds the request body into dst and writes a 400 with field
// details on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, nil, apperror.Validation("invalid payload", validation.ToDetails(err)))
		return false
	}
	return true
}

func principal(c *gin.Context) *entity.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}
