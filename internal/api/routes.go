package api

import (
	"fmt"
	"net/http"

	"instructly_go_backend/internal/auth"
	apperrors "instructly_go_backend/internal/errors"
	"instructly_go_backend/internal/middleware"
	"instructly_go_backend/internal/models"
	"instructly_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	classificationService *services.ClassificationService,
	usageService *services.UsageService,
	userService *services.UserService,
	rateLimiter *middleware.PerUserRateLimiter,
) {
	api := r.Group("/api")
	{
		api.POST("/analyze-topics", auth.AuthMiddleware(userService), rateLimiter.Middleware(), analyzeTopicsHandler(classificationService, usageService))
		api.GET("/usage/monthly-cost", auth.AuthMiddleware(userService), getMonthlyCostHandler(usageService))
		api.GET("/usage/limits", auth.AuthMiddleware(userService), getCostLimitsHandler(usageService))
	}
}

// currentUser pulls the user the auth middleware stored on the context.
func currentUser(c *gin.Context) (*models.User, error) {
	u, exists := c.Get("user")
	if !exists {
		return nil, apperrors.New401Error()
	}
	user, ok := u.(*models.User)
	if !ok {
		return nil, apperrors.New401Error()
	}
	return user, nil
}

// analyzeTopicsHandler is the caller boundary for the classification engine.
// The monthly cost cap is enforced here, before the engine runs; once a batch
// starts it runs to completion even if it crosses the cap.
func analyzeTopicsHandler(classificationService *services.ClassificationService, usageService *services.UsageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		var req models.ClassificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("invalid request body"))
			return
		}

		limits := usageService.CheckCostLimits(user.ID)
		if !limits.WithinLimits {
			apperrors.HandleError(c, apperrors.NewCostLimitError(
				fmt.Sprintf("monthly cost limit reached: $%.2f of $%.2f", limits.CurrentCost, limits.Limit)))
			return
		}

		result, err := classificationService.AnalyzeTopics(c.Request.Context(), user.ID, &req)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"topics":           result.Topics,
			"totalCost":        result.TotalCost,
			"processingTimeMs": result.ProcessingTime.Milliseconds(),
		})
	}
}

func getMonthlyCostHandler(usageService *services.UsageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"currentMonthCost": usageService.GetUserMonthlyCost(user.ID),
		})
	}
}

func getCostLimitsHandler(usageService *services.UsageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, usageService.CheckCostLimits(user.ID))
	}
}
