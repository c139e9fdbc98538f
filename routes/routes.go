package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"college-chatbot/models"
	"college-chatbot/services"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// Answerer runs the ask pipeline.
type Answerer interface {
	AnswerQuery(ctx context.Context, in services.AskInput) (*services.AskResult, error)
}

type DocumentManager interface {
	Upload(ctx context.Context, in services.UploadInput) (*models.Document, error)
	List(ctx context.Context, division string) ([]models.Document, error)
	Delete(ctx context.Context, id string) error
}

type AnalyticsReporter interface {
	Summary(ctx context.Context, division string) (*models.AnalyticsSummary, error)
	Clear(ctx context.Context, division string) (int64, error)
	ExportExcel(ctx context.Context, division string) ([]byte, error)
}

type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*services.LoginResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

type StudentQueryManager interface {
	Submit(ctx context.Context, username, division, text string) (*models.StudentQuery, error)
	ListByDivision(ctx context.Context, division string) ([]models.StudentQuery, error)
	ListMine(ctx context.Context, username string) ([]models.StudentQuery, error)
	Reply(ctx context.Context, id, facultyDivision, reply string) (*models.StudentQuery, error)
}

// SetupHealthRoutes registers the liveness probe.
func SetupHealthRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})
}

// SetupNotFound answers unknown routes the way every other handler answers errors.
func SetupNotFound(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		utils.RespondWithMessage(c, http.StatusNotFound,
			fmt.Sprintf("Route Not Found - Cannot %s %s", c.Request.Method, c.Request.URL.RequestURI()))
	})
}
