package routes

import (
	"fmt"
	"net/http"

	"college-chatbot/middleware"
	"college-chatbot/services"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func SetupAnalyticsRoutes(router *gin.Engine, analytics AnalyticsReporter, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	group := router.Group("/analytics")
	group.Use(authMiddleware.RequireAuth(), roleMiddleware.FacultyGuard())

	group.GET("/:division", func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		summary, err := analytics.Summary(ctx, c.Param("division"))
		if err != nil {
			middleware.RequestLogger(c).Error("failed to fetch analytics", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to fetch analytics data.")
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	group.DELETE("/:division", func(c *gin.Context) {
		division := c.Param("division")

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		if _, err := analytics.Clear(ctx, division); err != nil {
			middleware.RequestLogger(c).Error("failed to clear analytics", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to clear analytics data.")
			return
		}
		utils.RespondWithMessage(c, http.StatusOK, fmt.Sprintf("Analytics data for division %s has been cleared.", division))
	})

	group.GET("/:division/export", func(c *gin.Context) {
		division := c.Param("division")

		ctx, cancel := utils.WithLongTimeout(c.Request.Context())
		defer cancel()

		data, err := analytics.ExportExcel(ctx, division)
		if err != nil {
			middleware.RequestLogger(c).Error("failed to export analytics", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to export analytics data.")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName(division)))
		c.Data(http.StatusOK, xlsxContentType, data)
	})
}
