package handler

import (
	"log"
	"net/http"
	"time"

	"djibtrade/internal/cache"
	"djibtrade/internal/middleware"
	"djibtrade/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc       *service.AuthService
	blacklist *cache.TokenBlacklist
}

func NewAuthHandler(svc *service.AuthService, blacklist *cache.TokenBlacklist) *AuthHandler {
	return &AuthHandler{svc: svc, blacklist: blacklist}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	CompanyName string `json:"company_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
	})
	if err != nil {
		if err == service.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[auth] register failed: email=%s err=%v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCreds {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout blacklists the presented access token for its remaining lifetime.
// Without redis the tokens are only dropped client-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			log.Printf("[auth] token revoke failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ChangePassword(middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		if err == service.ErrInvalidCreds {
			c.JSON(http.StatusBadRequest, gin.H{"old_password": "mot de passe actuel incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "change password failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "mot de passe changé avec succès"})
}
