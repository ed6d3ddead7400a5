package repository

import (
	"djibtrade/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *models.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) List() ([]models.Category, error) {
	var list []models.Category
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Category{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

// Delete removes the category and nulls category_id on its products, in one
// transaction (set-null, never cascade).
func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
