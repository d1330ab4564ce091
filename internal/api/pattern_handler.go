package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PatternHandler holds the pattern service dependency.
type PatternHandler struct {
	patternService service.PatternService
}

// NewPatternHandler creates a new PatternHandler.
func NewPatternHandler(patternService service.PatternService) *PatternHandler {
	return &PatternHandler{patternService: patternService}
}

// --- Request Structs ---

type AssignTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

type AddTaskRequest struct {
	Label  string `json:"label" binding:"required"`
	Detail string `json:"detail"`
	Day    string `json:"day"`
}

type LogWeightRequest struct {
	Weight float64 `json:"weight" binding:"required"`
}

// clientIDParam parses the :clientId path parameter.
func clientIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// GetPattern returns the client's current coaching pattern.
func (h *PatternHandler) GetPattern(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	state, err := h.patternService.GetPattern(c.Request.Context(), reqID, clientID)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AssignWorkout expands a program template onto the client's pattern.
func (h *PatternHandler) AssignWorkout(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req AssignTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	state, err := h.patternService.AssignWorkout(c.Request.Context(), reqID, clientID, templateID)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AssignDiet expands a diet template onto the client's pattern.
func (h *PatternHandler) AssignDiet(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req AssignTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	state, err := h.patternService.AssignDiet(c.Request.Context(), reqID, clientID, templateID)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ToggleTask flips one task's completed flag.
func (h *PatternHandler) ToggleTask(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}
	taskID := c.Param("taskId")

	state, err := h.patternService.ToggleTask(c.Request.Context(), reqID, clientID, taskID)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddTask prepends a coach-authored task to the client's list.
func (h *PatternHandler) AddTask(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	state, err := h.patternService.AddTask(c.Request.Context(), reqID, clientID, req.Label, req.Detail, req.Day)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// Finalize stamps the pattern as done and completes every task.
func (h *PatternHandler) Finalize(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	state, err := h.patternService.Finalize(c.Request.Context(), reqID, clientID)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// LogWeight records a measurement in the pattern's rolling weight log.
func (h *PatternHandler) LogWeight(c *gin.Context) {
	reqID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	clientID, ok := clientIDParam(c)
	if !ok {
		return
	}

	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	state, err := h.patternService.LogWeight(c.Request.Context(), reqID, clientID, req.Weight)
	if err != nil {
		h.patternError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *PatternHandler) patternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound), errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrClientNotRole), errors.Is(err, service.ErrTemplateEmpty),
		errors.Is(err, service.ErrTaskLabelRequired), errors.Is(err, service.ErrInvalidWeight):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPatternDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not process pattern request")
	}
}
