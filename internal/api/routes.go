package api

import (
	"net/http"

	"fitstudio/coach-app/internal/domain"
	"fitstudio/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the router. Trainer routes are
// role-gated; customers reach their own pattern and insights through
// /clients/:clientId, which the services authorize per requester.
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	trainerService service.TrainerService,
	programService service.ProgramService,
	patternService service.PatternService,
	insightsService service.InsightsService,
	logService service.LogService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	programHandler := NewProgramHandler(programService)
	patternHandler := NewPatternHandler(patternService)
	insightsHandler := NewInsightsHandler(insightsService)
	logHandler := NewLogHandler(logService)

	authMiddleware := AuthMiddleware(authService.GetJWTSecret())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Activity logs (any authenticated customer) ---
		logGroup := protected.Group("/logs")
		logGroup.Use(RoleMiddleware(domain.RoleTrainerManaged, domain.RoleSelfManaged))
		{
			logGroup.POST("/workouts", logHandler.StartWorkout)
			logGroup.GET("/workouts", logHandler.GetWorkouts)
			logGroup.POST("/workouts/:sessionId/finish", logHandler.FinishWorkout)
			logGroup.POST("/workouts/:sessionId/cancel", logHandler.CancelWorkout)

			logGroup.POST("/meals", logHandler.LogMeal)
			logGroup.GET("/meals", logHandler.GetMeals)
			logGroup.PUT("/meals/:logId", logHandler.UpdateMeal)
			logGroup.DELETE("/meals/:logId", logHandler.DeleteMeal)
			logGroup.POST("/meals/photo-upload-url", logHandler.MealPhotoUploadURL)
			logGroup.GET("/meals/:logId/photo-url", logHandler.MealPhotoDownloadURL)

			logGroup.POST("/weights", logHandler.LogWeight)
			logGroup.GET("/weights", logHandler.GetWeights)
		}

		// --- Customer self-service pattern view ---
		// The pattern service authorizes the requester against the
		// clientId, so customers can only reach their own document.
		selfGroup := protected.Group("/clients/:clientId")
		{
			selfGroup.GET("/pattern", patternHandler.GetPattern)
			selfGroup.GET("/insights", insightsHandler.ClientInsights)
			selfGroup.POST("/pattern/tasks/:taskId/toggle", patternHandler.ToggleTask)
			selfGroup.POST("/pattern/weights", patternHandler.LogWeight)
		}

		// --- Trainer console ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin))
		{
			trainerGroup.POST("/clients", trainerHandler.AddClientByEmail)
			trainerGroup.GET("/clients", trainerHandler.GetManagedClients)
			trainerGroup.DELETE("/clients/:clientId", trainerHandler.RemoveClient)

			// Program templates
			trainerGroup.POST("/programs", programHandler.CreateProgram)
			trainerGroup.GET("/programs", programHandler.ListPrograms)
			trainerGroup.GET("/programs/:templateId", programHandler.GetProgram)
			trainerGroup.PUT("/programs/:templateId", programHandler.UpdateProgram)
			trainerGroup.POST("/programs/:templateId/duplicate", programHandler.DuplicateProgram)
			trainerGroup.DELETE("/programs/:templateId", programHandler.DeleteProgram)

			// Diet templates
			trainerGroup.POST("/diets", programHandler.CreateDietTemplate)
			trainerGroup.GET("/diets", programHandler.ListDietTemplates)
			trainerGroup.GET("/diets/:templateId", programHandler.GetDietTemplate)
			trainerGroup.PUT("/diets/:templateId", programHandler.UpdateDietTemplate)
			trainerGroup.DELETE("/diets/:templateId", programHandler.DeleteDietTemplate)

			// Per-client pattern operations
			trainerGroup.GET("/clients/:clientId/pattern", patternHandler.GetPattern)
			trainerGroup.POST("/clients/:clientId/pattern/workout", patternHandler.AssignWorkout)
			trainerGroup.POST("/clients/:clientId/pattern/diet", patternHandler.AssignDiet)
			trainerGroup.POST("/clients/:clientId/pattern/tasks", patternHandler.AddTask)
			trainerGroup.POST("/clients/:clientId/pattern/tasks/:taskId/toggle", patternHandler.ToggleTask)
			trainerGroup.POST("/clients/:clientId/pattern/finalize", patternHandler.Finalize)
			trainerGroup.POST("/clients/:clientId/pattern/weights", patternHandler.LogWeight)

			// Insights dashboard
			trainerGroup.GET("/clients/:clientId/insights", insightsHandler.ClientInsights)
		}
	}
}
