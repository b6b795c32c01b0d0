package handlers

import (
	"net/http"

	"findartisan_backend/internal/middleware"
	"findartisan_backend/internal/models"
	"findartisan_backend/internal/services"
	"findartisan_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ArtisanHandler struct {
	*BaseHandler
	artisanService services.ArtisanService
}

func NewArtisanHandler(base *BaseHandler, artisanService services.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{
		BaseHandler:    base,
		artisanService: artisanService,
	}
}

// RegisterRoutes регистрирует маршруты мастеров и админ-модерацию
func (h *ArtisanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	artisan := rg.Group("/artisan")
	{
		artisan.POST("/register-artisan", h.RegisterArtisan)
		artisan.POST("/login-artisan", h.LoginArtisan)

		authed := artisan.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/complete-profile", middleware.RequireRoles(models.UserRoleArtisan), h.CompleteProfile)
			authed.GET("/profile", h.GetProfile)
		}
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		// Роут: PATCH /api/v1/admin/artisans/:id/review
		admin.PATCH("/artisans/:id/review", h.ReviewProfile)
	}
}

func (h *ArtisanHandler) RegisterArtisan(c *gin.Context) {
	var req dto.ArtisanRegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.artisanService.RegisterArtisan(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ArtisanHandler) LoginArtisan(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.artisanService.LoginArtisan(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ArtisanHandler) CompleteProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.artisanService.CompleteProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile submitted for review",
		"profile": profile,
	})
}

func (h *ArtisanHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.artisanService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *ArtisanHandler) ReviewProfile(c *gin.Context) {
	profileID := c.Param("id")

	var req dto.ReviewProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.artisanService.ReviewProfile(db, profileID, models.ArtisanStatus(req.Decision))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review recorded",
		"profile": profile,
	})
}
