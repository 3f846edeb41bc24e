package submission

import (
	"net/http"

	"leave-tracker/internal/shared/apperror"
	"leave-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("submission.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("submission request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	subs, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

func (h *Handler) Conflicts(c *gin.Context) {
	var req ConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	res, err := h.service.Conflicts(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// UpdateStatus answers 200 when every leave was updated and 207 otherwise,
// with refetch set so the dashboard reloads the real state.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	ids := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		ids = append(ids, string(id))
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), ids, req.Status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if res.AllUpdated() {
		response.Message(c, http.StatusOK, "Leave "+req.Status+" successfully", gin.H{"results": res.Results})
		return
	}
	response.Message(c, http.StatusMultiStatus, "Some leaves could not be updated", gin.H{
		"results": res.Results,
		"refetch": true,
	})
}
