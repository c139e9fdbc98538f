package routes

import (
	"errors"
	"fmt"
	"net/http"

	"college-chatbot/middleware"
	"college-chatbot/models"
	"college-chatbot/services"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.Engine, auth Authenticator) {
	router.POST("/login", func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, "All fields are required.")
			return
		}

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		result, err := auth.Login(ctx, req)
		switch {
		case errors.Is(err, services.ErrMissingFields):
			utils.RespondWithMessage(c, http.StatusBadRequest, "All fields are required.")
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithMessage(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("login failed", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "An error occurred during login.")
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			Message: "Login successful!",
			Token:   result.Token,
			User:    result.User,
		})
	})

	router.POST("/register", func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, "All fields are required.")
			return
		}

		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		user, err := auth.Register(ctx, req)
		switch {
		case errors.Is(err, services.ErrMissingFields):
			utils.RespondWithMessage(c, http.StatusBadRequest, "All fields are required.")
			return
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Role must be student or faculty.")
			return
		case errors.Is(err, services.ErrUsernameTaken):
			utils.RespondWithMessage(c, http.StatusConflict, "Username already exists.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("registration failed", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "An error occurred during registration.")
			return
		}

		utils.RespondWithMessage(c, http.StatusCreated, fmt.Sprintf("User '%s' registered successfully.", user.Username))
	})
}
