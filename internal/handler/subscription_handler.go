package handler

import (
	"net/http"
	"time"

	"djibtrade/internal/domain"
	"djibtrade/internal/middleware"
	"djibtrade/internal/repository"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subs  *repository.SubscriptionRepository
	users *repository.UserRepository
}

func NewSubscriptionHandler(subs *repository.SubscriptionRepository, users *repository.UserRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, users: users}
}

// GetMine returns the caller's plan, creating the FREE record on first read.
func (h *SubscriptionHandler) GetMine(c *gin.Context) {
	sub, err := h.subs.GetOrCreate(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

type setPlanRequest struct {
	Plan    string     `json:"plan" binding:"required"`
	EndDate *time.Time `json:"end_date"`
}

// SetPlan is admin-only; it also keeps the user's premium flag in sync with
// the plan.
func (h *SubscriptionHandler) SetPlan(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req setPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan := domain.Plan(req.Plan)
	if !plan.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"plan": "le plan doit être FREE ou PREMIUM"}})
		return
	}
	u, err := h.users.GetByID(userID)
	if err != nil {
		respondServiceError(c, domain.ErrNotFound)
		return
	}
	sub, err := h.subs.GetOrCreate(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription unavailable"})
		return
	}
	sub.Plan = plan
	sub.EndDate = req.EndDate
	if err := h.subs.Save(sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	u.IsPremium = plan == domain.PlanPremium
	if err := h.users.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}
