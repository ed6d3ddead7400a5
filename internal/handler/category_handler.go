package handler

import (
	"errors"
	"net/http"

	"djibtrade/internal/domain"
	"djibtrade/internal/models"
	"djibtrade/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	repo *repository.CategoryRepository
}

func NewCategoryHandler(repo *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// List is public: buyers browse by category without an account.
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": list})
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat := &models.Category{Name: req.Name}
	if err := h.repo.Create(cat); err != nil {
		c.JSON(http.StatusConflict, gin.H{"errors": gin.H{"name": "catégorie déjà existante"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// Delete removes a category; products referencing it keep their rows with
// the category cleared.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, domain.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
