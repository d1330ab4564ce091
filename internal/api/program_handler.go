package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request/Response Structs ---

type DailyWorkoutRequest struct {
	DayLabel        string   `json:"dayLabel" binding:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Theme           string   `json:"theme" binding:"required"`
	Focus           string   `json:"focus" binding:"required"`
	DurationMinutes int      `json:"durationMinutes" binding:"omitempty,min=0"`
	Intensity       string   `json:"intensity" binding:"omitempty,oneof=low medium high"`
	KeyWork         []string `json:"keyWork"`
	ReadinessCue    string   `json:"readinessCue"`
	NutritionCue    string   `json:"nutritionCue"`
}

type ProgramTemplateRequest struct {
	Name             string                `json:"name" binding:"required"`
	Focus            string                `json:"focus" binding:"required"`
	Level            string                `json:"level"`
	DurationWeeks    int                   `json:"durationWeeks" binding:"omitempty,min=1,max=52"`
	ProgressionNotes string                `json:"progressionNotes"`
	Status           string                `json:"status" binding:"omitempty,oneof=Draft Live"`
	DailyWorkouts    []DailyWorkoutRequest `json:"dailyWorkouts" binding:"dive"`
}

type MealRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Calories    int    `json:"calories" binding:"omitempty,min=0"`
}

type DietDayRequest struct {
	DayLabel  string        `json:"dayLabel" binding:"required,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	Emphasis  string        `json:"emphasis" binding:"required"`
	Meals     []MealRequest `json:"meals" binding:"dive"`
	Hydration string        `json:"hydration"`
	Notes     string        `json:"notes"`
}

type DietTemplateRequest struct {
	Name     string           `json:"name" binding:"required"`
	Overview string           `json:"overview"`
	Days     []DietDayRequest `json:"days" binding:"dive"`
}

func (r ProgramTemplateRequest) toDomain() domain.ProgramTemplate {
	days := make([]domain.DailyWorkout, 0, len(r.DailyWorkouts))
	for _, d := range r.DailyWorkouts {
		days = append(days, domain.DailyWorkout{
			DayLabel:        d.DayLabel,
			Theme:           d.Theme,
			Focus:           d.Focus,
			DurationMinutes: d.DurationMinutes,
			Intensity:       domain.Intensity(d.Intensity),
			KeyWork:         d.KeyWork,
			ReadinessCue:    d.ReadinessCue,
			NutritionCue:    d.NutritionCue,
		})
	}
	return domain.ProgramTemplate{
		Name:             r.Name,
		Focus:            r.Focus,
		Level:            r.Level,
		DurationWeeks:    r.DurationWeeks,
		ProgressionNotes: r.ProgressionNotes,
		Status:           r.Status,
		DailyWorkouts:    days,
	}
}

func (r DietTemplateRequest) toDomain() domain.DietTemplate {
	days := make([]domain.DietDay, 0, len(r.Days))
	for _, d := range r.Days {
		meals := make([]domain.Meal, 0, len(d.Meals))
		for _, m := range d.Meals {
			meals = append(meals, domain.Meal{
				Title:       m.Title,
				Description: m.Description,
				Calories:    m.Calories,
			})
		}
		days = append(days, domain.DietDay{
			DayLabel:  d.DayLabel,
			Emphasis:  d.Emphasis,
			Meals:     meals,
			Hydration: d.Hydration,
			Notes:     d.Notes,
		})
	}
	return domain.DietTemplate{
		Name:     r.Name,
		Overview: r.Overview,
		Days:     days,
	}
}

// --- Program template handlers ---

// CreateProgram stores a new program template owned by the caller.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req ProgramTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tpl, err := h.programService.CreateProgram(c.Request.Context(), creatorID, req.toDomain())
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// ListPrograms returns all program templates, or only the caller's own
// when ?mine=true is set.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	var templates []domain.ProgramTemplate
	var err error

	if c.Query("mine") == "true" {
		var creatorID primitive.ObjectID
		creatorID, err = requesterID(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
			return
		}
		templates, err = h.programService.GetProgramsByCreator(c.Request.Context(), creatorID)
	} else {
		templates, err = h.programService.ListPrograms(c.Request.Context())
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch program templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetProgram returns one program template.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	tpl, err := h.programService.GetProgram(c.Request.Context(), id)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// UpdateProgram replaces a template's content.
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req ProgramTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tpl := req.toDomain()
	tpl.ID = id
	updated, err := h.programService.UpdateProgram(c.Request.Context(), creatorID, tpl)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DuplicateProgram clones a template as a draft copy.
func (h *ProgramHandler) DuplicateProgram(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	clone, err := h.programService.DuplicateProgram(c.Request.Context(), creatorID, id)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

// DeleteProgram removes a template the caller created.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), creatorID, id); err != nil {
		h.templateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Diet template handlers ---

// CreateDietTemplate stores a new diet template owned by the caller.
func (h *ProgramHandler) CreateDietTemplate(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req DietTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tpl, err := h.programService.CreateDietTemplate(c.Request.Context(), creatorID, req.toDomain())
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// ListDietTemplates returns the caller's diet templates.
func (h *ProgramHandler) ListDietTemplates(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	templates, err := h.programService.GetDietTemplatesByCreator(c.Request.Context(), creatorID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch diet templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetDietTemplate returns one diet template.
func (h *ProgramHandler) GetDietTemplate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	tpl, err := h.programService.GetDietTemplate(c.Request.Context(), id)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// UpdateDietTemplate replaces a diet template's content.
func (h *ProgramHandler) UpdateDietTemplate(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req DietTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tpl := req.toDomain()
	tpl.ID = id
	updated, err := h.programService.UpdateDietTemplate(c.Request.Context(), creatorID, tpl)
	if err != nil {
		h.templateError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDietTemplate removes a diet template the caller created.
func (h *ProgramHandler) DeleteDietTemplate(c *gin.Context) {
	creatorID, err := requesterID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := h.programService.DeleteDietTemplate(c.Request.Context(), creatorID, id); err != nil {
		h.templateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProgramHandler) templateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTemplateNameRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Could not process template request")
	}
}
