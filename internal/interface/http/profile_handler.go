package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/careerconnect-api/internal/application"
	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/interface/middleware"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
	"github.com/oksasatya/careerconnect-api/pkg/response"
)

type ProfileHandler struct {
	Svc    *app.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *app.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

// profileView renders whichever role's profile the principal carries.
func profileView(p *entity.Principal) any {
	if p.Candidate != nil {
		return gin.H{"role": p.Role, "profile": p.Candidate}
	}
	return gin.H{"role": p.Role, "profile": p.Recruiter}
}

func (h *ProfileHandler) Register(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, h.Logger, apperror.Unauthorized("authentication required"))
		return
	}
	var in app.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	if in.Name == "" {
		in.Name = id.Name
	}
	p, err := h.Svc.Register(c.Request.Context(), id.Subject, id.Email, in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, profileView(p), "Profile created successfully", nil)
}

func (h *ProfileHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, profileView(principal(c)), "profile fetched", nil)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var in app.ProfileUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Svc.UpdateMe(c.Request.Context(), principal(c).ID, in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, profileView(p), "Profile updated successfully", nil)
}

func (h *ProfileHandler) ToggleSaved(c *gin.Context) {
	saved, added, err := h.Svc.ToggleSaved(c.Request.Context(), principal(c).ID, c.Param("internshipId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	msg := "Internship removed from saved list"
	if added {
		msg = "Internship saved"
	}
	response.Success(c, http.StatusOK, gin.H{"savedInternships": saved, "saved": added}, msg, nil)
}

func (h *ProfileHandler) Saved(c *gin.Context) {
	list, err := h.Svc.ListSaved(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "saved internships fetched", map[string]any{"count": len(list)})
}

// UploadResume accepts a multipart "resume" file field.
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, app.MaxResumeBytes+1<<20)
	fh, err := c.FormFile("resume")
	if err != nil {
		respondError(c, h.Logger, apperror.Validation("invalid payload", map[string]string{"resume": "is required"}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, apperror.BadRequest("Could not read the uploaded file."))
		return
	}
	defer func() { _ = f.Close() }()

	cand, err := h.Svc.UploadResume(c.Request.Context(), principal(c).ID, fh.Filename, fh.Size, f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resumeUrl": cand.Profile.ResumeURL}, "Resume uploaded successfully", nil)
}
