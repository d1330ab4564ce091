package api

import (
	"errors"
	"net/http"

	"fitstudio/coach-app/internal/pattern"
	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// InsightsHandler holds the insights service dependency.
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// ClientInsights returns the aggregated dashboard view for one client
// and scope. Scope defaults to thisWeek.
func (h *InsightsHandler) ClientInsights(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	scope, err := pattern.ParseScope(c.DefaultQuery("scope", string(pattern.ScopeThisWeek)))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := h.insightsService.ClientInsights(c.Request.Context(), reqID, clientID, scope)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPatternDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not compute insights")
		}
		return
	}

	c.JSON(http.StatusOK, insights)
}
