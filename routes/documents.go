package routes

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"college-chatbot/middleware"
	"college-chatbot/services"
	"college-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// SetupDocumentRoutes registers the knowledge base endpoints. Uploads and deletes
// need a faculty token; listing is open like /ask.
func SetupDocumentRoutes(router *gin.Engine, documents DocumentManager, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, maxFileSize int64) {
	faculty := []gin.HandlerFunc{authMiddleware.RequireAuth(), roleMiddleware.FacultyGuard()}

	upload := append(append([]gin.HandlerFunc{}, faculty...), middleware.RequestSizeLimit(maxFileSize), func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.RespondWithMessage(c, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size.")
				return
			}
			utils.RespondWithMessage(c, http.StatusBadRequest, "No file uploaded.")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithMessage(c, http.StatusBadRequest, "No file uploaded.")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			middleware.RequestLogger(c).Error("failed to read upload", "file_name", fileHeader.Filename, "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to add document.")
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
			mimeType = parsed
		}

		ctx, cancel := utils.WithLongTimeout(c.Request.Context())
		defer cancel()

		doc, err := documents.Upload(ctx, services.UploadInput{
			FileName: fileHeader.Filename,
			MIMEType: mimeType,
			Category: c.PostForm("category"),
			Division: c.PostForm("division"),
			Data:     data,
		})
		switch {
		case errors.Is(err, services.ErrMissingCategory):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Category is required.")
			return
		case errors.Is(err, services.ErrUnsupportedType):
			utils.RespondWithMessage(c, http.StatusBadRequest, fmt.Sprintf("Unsupported file type: %s", mimeType))
			return
		case errors.Is(err, services.ErrEmptyContent):
			utils.RespondWithMessage(c, http.StatusBadRequest, "File is empty or content could not be extracted.")
			return
		case errors.Is(err, services.ErrDuplicateContent):
			utils.RespondWithMessage(c, http.StatusConflict, "Upload failed: This exact document content already exists.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("failed to add document", "file_name", fileHeader.Filename, "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to add document.")
			return
		}

		utils.RespondWithMessage(c, http.StatusCreated, fmt.Sprintf("Successfully added \"%s\" to the knowledge base.", doc.FileName))
	})
	router.POST("/content/add", upload...)

	router.GET("/documents/:division", func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		docs, err := documents.List(ctx, c.Param("division"))
		if err != nil {
			middleware.RequestLogger(c).Error("failed to list documents", "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to fetch documents.")
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	remove := append(append([]gin.HandlerFunc{}, faculty...), func(c *gin.Context) {
		ctx, cancel := utils.WithTimeout(c.Request.Context())
		defer cancel()

		err := documents.Delete(ctx, c.Param("id"))
		switch {
		case errors.Is(err, services.ErrInvalidID):
			utils.RespondWithMessage(c, http.StatusBadRequest, "Invalid document ID.")
			return
		case errors.Is(err, services.ErrDocumentNotFound):
			utils.RespondWithMessage(c, http.StatusNotFound, "Document not found.")
			return
		case err != nil:
			middleware.RequestLogger(c).Error("failed to delete document", "id", c.Param("id"), "error", err)
			utils.RespondWithMessage(c, http.StatusInternalServerError, "Failed to delete document.")
			return
		}

		utils.RespondWithMessage(c, http.StatusOK, "Document deleted successfully.")
	})
	router.DELETE("/documents/:id", remove...)
}
