package repository

import (
	"djibtrade/internal/models"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

// Delete removes the product and clears related_product_id on notifications
// that reference it (set-null, the rows themselves stay).
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Notification{}).Where("related_product_id = ?", id).Update("related_product_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns listings newest first, optionally filtered by category.
func (r *ProductRepository) List(categoryID *uint, limit, offset int) ([]models.Product, error) {
	var list []models.Product
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Find(&list).Error
	return list, err
}

// IncrementViews bumps the counter by one in a single UPDATE so concurrent
// retrievals never lose a view.
func (r *ProductRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
