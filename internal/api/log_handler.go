package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler holds the log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- Request Structs ---

type StartWorkoutRequest struct {
	WorkoutType domain.WorkoutType `json:"workoutType" binding:"required,oneof=cardio strength flexibility balance"`
}

type FinishWorkoutRequest struct {
	CaloriesBurned int `json:"caloriesBurned" binding:"omitempty,min=0"`
}

type MealLogRequest struct {
	MealType    domain.MealType `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack postWorkout"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Calories    int             `json:"calories" binding:"omitempty,min=0"`
	PhotoKey    string          `json:"photoKey"`
}

type MealPhotoURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type WeightLogRequest struct {
	Weight float64 `json:"weight" binding:"required"`
}

// listLimit parses the optional ?limit query parameter.
func listLimit(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// --- Workout session handlers ---

// StartWorkout opens a new ongoing session for the caller.
func (h *LogHandler) StartWorkout(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.logService.StartWorkout(c.Request.Context(), userID, req.WorkoutType)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// FinishWorkout closes an ongoing session as completed.
func (h *LogHandler) FinishWorkout(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req FinishWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.logService.FinishWorkout(c.Request.Context(), userID, sessionID, req.CaloriesBurned)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CancelWorkout closes an ongoing session as cancelled.
func (h *LogHandler) CancelWorkout(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := h.logService.CancelWorkout(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetWorkouts lists the caller's sessions, newest first.
func (h *LogHandler) GetWorkouts(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	sessions, err := h.logService.GetWorkouts(c.Request.Context(), userID, listLimit(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch workout sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// --- Diet log handlers ---

// LogMeal records one meal entry.
func (h *LogHandler) LogMeal(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.logService.LogMeal(c.Request.Context(), userID, req.MealType, req.Title, req.Description, req.Calories, req.PhotoKey)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateMeal edits a meal entry's descriptive fields.
func (h *LogHandler) UpdateMeal(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.logService.UpdateMeal(c.Request.Context(), userID, logID, req.MealType, req.Title, req.Description, req.Calories)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteMeal removes a meal entry and its photo.
func (h *LogHandler) DeleteMeal(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	if err := h.logService.DeleteMeal(c.Request.Context(), userID, logID); err != nil {
		h.logError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMeals lists the caller's meal entries, newest first.
func (h *LogHandler) GetMeals(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	entries, err := h.logService.GetMeals(c.Request.Context(), userID, listLimit(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch diet logs")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// MealPhotoUploadURL issues a presigned PUT URL for a new meal photo.
func (h *LogHandler) MealPhotoUploadURL(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req MealPhotoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	url, objectKey, err := h.logService.MealPhotoUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": url, "objectKey": objectKey})
}

// MealPhotoDownloadURL issues a presigned GET URL for a meal's photo.
func (h *LogHandler) MealPhotoDownloadURL(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format")
		return
	}

	url, err := h.logService.MealPhotoDownloadURL(c.Request.Context(), userID, logID)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// --- Weight log handlers ---

// LogWeight records a body-weight measurement.
func (h *LogHandler) LogWeight(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req WeightLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.logService.LogWeight(c.Request.Context(), userID, req.Weight)
	if err != nil {
		h.logError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetWeights lists the caller's weight measurements, newest first.
func (h *LogHandler) GetWeights(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	entries, err := h.logService.GetWeights(c.Request.Context(), userID, listLimit(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch weight logs")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LogHandler) logError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrDietLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSessionClosed), errors.Is(err, service.ErrInvalidWorkoutType),
		errors.Is(err, service.ErrInvalidMealType), errors.Is(err, service.ErrUnsupportedPhoto),
		errors.Is(err, service.ErrInvalidWeight):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not process log request")
	}
}
