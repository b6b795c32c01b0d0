package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"findartisan_backend/internal/logger"
	"findartisan_backend/internal/middleware"
	"findartisan_backend/internal/storage"
	"findartisan_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Поля формы, в которых приходят документы верификации
var documentFields = []string{
	"passportPhoto",
	"govIdCard",
	"businessCertificate",
	"proofOfAddress",
}

type FileHandler struct {
	*BaseHandler
	storage      storage.Storage
	maxSize      int64
	allowedTypes map[string]string // MIME type -> extension
}

func NewFileHandler(base *BaseHandler, store storage.Storage, maxSize int64, allowedTypes []string) *FileHandler {
	extByType := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"application/pdf": ".pdf",
	}

	allowed := make(map[string]string, len(allowedTypes))
	for _, t := range allowedTypes {
		if ext, ok := extByType[t]; ok {
			allowed[t] = ext
		}
	}

	return &FileHandler{
		BaseHandler:  base,
		storage:      store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

// RegisterRoutes регистрирует маршруты загрузки файлов
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		// Роут: POST /api/v1/files/verification-documents
		files.POST("/verification-documents", h.UploadVerificationDocuments)
	}
}

// UploadVerificationDocuments принимает multipart-форму с документами
// и возвращает сохраненные ссылки, пригодные для complete-profile.
func (h *FileHandler) UploadVerificationDocuments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if err := c.Request.ParseMultipartForm(h.maxSize); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	uploaded := make(map[string]string, len(documentFields))

	for _, field := range documentFields {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			// Поле необязательное, клиент может догружать документы частями
			continue
		}

		ref, appErr := h.saveDocument(c, userID, field, fileHeader)
		if appErr != nil {
			apperrors.HandleError(c, appErr)
			return
		}
		uploaded[field] = ref
	}

	if len(uploaded) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No document files in request"))
		return
	}

	logger.CtxInfo(ctx, "Verification documents uploaded", "count", len(uploaded))

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"documents": uploaded,
	})
}

func (h *FileHandler) saveDocument(c *gin.Context, userID, field string, fh *multipart.FileHeader) (string, *apperrors.AppError) {
	if fh.Size > h.maxSize {
		return "", apperrors.NewBadRequestError(
			fmt.Sprintf("File %q exceeds the %d byte limit", field, h.maxSize))
	}

	contentType := fh.Header.Get("Content-Type")
	// multipart заголовок может нести параметры вида "image/jpeg; charset=..."
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	ext, ok := h.allowedTypes[contentType]
	if !ok {
		return "", apperrors.NewBadRequestError(
			fmt.Sprintf("File %q has unsupported type %q, only JPEG, PNG and PDF are accepted", field, contentType))
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	// Имя не зависит от пользовательского ввода
	path := filepath.Join("verification", userID, field+"-"+uuid.New().String()+ext)

	ref, err := h.storage.Save(c.Request.Context(), path, src, contentType)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to store verification document", err, "field", field)
		return "", apperrors.InternalError(err)
	}

	return ref, nil
}
