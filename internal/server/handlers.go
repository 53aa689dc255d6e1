package server

import (
	"errors"
	"net/http"

	"github.com/emrgen/linkdealer/schema"
	"github.com/emrgen/linkdealer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler creates the api handler set.
func NewHandler(info *service.InfoService, links *service.LinkService, utm *service.UTMService) *Handler {
	return &Handler{
		info:  info,
		links: links,
		utm:   utm,
	}
}

type Handler struct {
	info  *service.InfoService
	links *service.LinkService
	utm   *service.UTMService
}

func (h *Handler) GetInfo(c *gin.Context) {
	info, err := h.info.GetInfo(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) UpdateInfo(c *gin.Context) {
	var req schema.Info
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	info, err := h.info.UpdateInfo(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req schema.LinkCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	link, err := h.links.CreateLink(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) MakeUTM(c *gin.Context) {
	var req schema.UTMInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	utms, err := h.utm.MakeUTM(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utms)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: err.Error(),
			Code:    code,
		},
	})
}

// respondServiceError maps the typed service errors onto status codes.
// Anything unrecognized is a 500; the transaction already rolled back.
func respondServiceError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var invalidAssoc *service.InvalidAssociationError
	var validation *service.ValidationError

	switch {
	case errors.As(err, &notFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &invalidAssoc):
		respondError(c, http.StatusBadRequest, "invalid_association", err)
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, "validation", err)
	default:
		logrus.Errorf("request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
