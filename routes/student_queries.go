package routes

import (
	"errors"
	"net/http"

	"college-chatbot/middleware"
	"college-chatbot/models"
	"college-chatbot/services"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// SetupStudentQueryRoutes registers direct student to faculty questions. Username
// and division always come from the token, never from the body.
func SetupStudentQueryRoutes(router *gin.Engine, queries StudentQueryManager, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	group := router.Group("/student-queries")
	group.Use(authMiddleware.RequireAuth())

	group.POST("", roleMiddleware.StudentGuard(), func(c *gin.Context) {
		var req models.StudentQueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, "Query is required.")
			return
		}

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		q, err := queries.Submit(ctx, middleware.GetUsername(c), middleware.GetDivision(c), req.Query)
		switch {
		case errors.Is(err, services.ErrEmptyStudentQuery):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Query is required.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("failed to submit student query", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to submit query.")
			return
		}
		c.JSON(http.StatusCreated, q)
	})

	group.GET("/mine", roleMiddleware.StudentGuard(), func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		list, err := queries.ListMine(ctx, middleware.GetUsername(c))
		if err != nil {
			middleware.RequestLogger(c).Error("failed to list student queries", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to fetch queries.")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	group.GET("/division/:division", roleMiddleware.FacultyGuard(), func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		list, err := queries.ListByDivision(ctx, c.Param("division"))
		if err != nil {
			middleware.RequestLogger(c).Error("failed to list student queries", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to fetch queries.")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	group.PUT("/:id/reply", roleMiddleware.FacultyGuard(), func(c *gin.Context) {
		var req models.StudentQueryReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, "Reply is required.")
			return
		}

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		q, err := queries.Reply(ctx, c.Param("id"), middleware.GetDivision(c), req.Reply)
		switch {
		case errors.Is(err, services.ErrInvalidID):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Invalid query ID.")
			return
		case errors.Is(err, services.ErrEmptyReply):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Reply is required.")
			return
		case errors.Is(err, services.ErrStudentQueryNotFound):
			utils.RespondWithMessage(c, http.StatusNotFound, "Query not found.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("failed to reply to student query", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to save reply.")
			return
		}
		c.JSON(http.StatusOK, q)
	})
}
