package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"djibtrade/internal/domain"
	"djibtrade/internal/middleware"
	"djibtrade/internal/repository"
	"djibtrade/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	users *repository.UserRepository
	cloud cloudinary.Client
}

func NewUserHandler(users *repository.UserRepository, cloud cloudinary.Client) *UserHandler {
	return &UserHandler{users: users, cloud: cloud}
}

// GetProfile returns the authenticated company account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateProfileRequest struct {
	CompanyName *string `json:"company_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
}

// UpdateProfile patches the caller's own account. Role and premium flag are
// admin-only and rejected here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	if req.CompanyName != nil && *req.CompanyName != "" {
		u.CompanyName = *req.CompanyName
	}
	if req.Phone != nil && *req.Phone != "" {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.City != nil {
		u.City = *req.City
	}
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UploadLogo stores the company logo and saves its URL on the account.
func (h *UserHandler) UploadLogo(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file required"})
		return
	}
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads disabled"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()
	folder := "djibtrade/logos/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "logo_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	u.LogoURL = url
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

// List is for admins and moderators: newest first with an optional search
// term over email, company name, and role.
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := h.users.List(c.Query("search"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	u, err := h.users.GetByID(id)
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type adminUpdateUserRequest struct {
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
	IsPremium *bool   `json:"is_premium"`
}

// AdminUpdate lets admins change role, active, and premium flags.
func (h *UserHandler) AdminUpdate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.users.GetByID(id)
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	if req.Role != nil {
		switch *req.Role {
		case domain.RoleUser, domain.RoleModerator, domain.RoleAdmin:
			u.Role = *req.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"role": "rôle inconnu"}})
			return
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsPremium != nil {
		u.IsPremium = *req.IsPremium
	}
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if _, err := h.users.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, domain.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if err := h.users.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
