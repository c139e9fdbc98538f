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

const missingAskFieldsMessage = "Query and division are required."

// SetupAskRoutes registers POST /ask. limiters run before the handler, typically the
// Redis rate limiter when one is configured.
func SetupAskRoutes(router *gin.Engine, answers Answerer, authMiddleware *middleware.AuthMiddleware, limiters ...gin.HandlerFunc) {
	handlers := append([]gin.HandlerFunc{authMiddleware.OptionalAuth()}, limiters...)
	handlers = append(handlers, func(c *gin.Context) {
		var req models.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, missingAskFieldsMessage)
			return
		}

		result, err := answers.AnswerQuery(c.Request.Context(), services.AskInput{
			Query:    req.Query,
			Division: req.Division,
			History:  req.History,
		})
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			utils.RespondWithMessage(c, http.StatusBadRequest, missingAskFieldsMessage)
			return
		case err != nil:
			middleware.RequestLogger(c).Error("ask failed", "division", req.Division, "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, services.ProcessingErrorMessage)
			return
		}

		c.JSON(http.StatusOK, models.AskResponse{Answer: result.Answer})
	})

	router.POST("/ask", handlers...)
}
