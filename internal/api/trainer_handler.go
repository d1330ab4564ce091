package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type AddClientRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --- Helpers ---

// requesterID extracts the authenticated user's ObjectID from the context.
func requesterID(c *gin.Context) (primitive.ObjectID, error) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(idStr)
}

// --- Handler Methods ---

// AddClientByEmail puts an already-registered customer on the trainer's
// roster.
func (h *TrainerHandler) AddClientByEmail(c *gin.Context) {
	trainerID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify trainer from token")
		return
	}

	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.trainerService.AddClientByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not add client")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// GetManagedClients lists the trainer's roster.
func (h *TrainerHandler) GetManagedClients(c *gin.Context) {
	trainerID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify trainer from token")
		return
	}

	clients, err := h.trainerService.GetManagedClients(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch clients")
		return
	}

	responses := make([]UserResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, MapUserToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// RemoveClient deletes a managed client and their coaching pattern.
func (h *TrainerHandler) RemoveClient(c *gin.Context) {
	trainerID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify trainer from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := h.trainerService.RemoveClient(c.Request.Context(), trainerID, clientID); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotManaged):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not remove client")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
