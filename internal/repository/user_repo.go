package repository

import (
	"djibtrade/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List returns users newest first, optionally filtered by a search term on
// email, company name, or role.
func (r *UserRepository) List(search string, limit, offset int) ([]models.User, error) {
	var list []models.User
	q := r.db.Order("date_joined DESC").Limit(limit).Offset(offset)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("email LIKE ? OR company_name LIKE ? OR role LIKE ?", like, like, like)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListIDsExcept returns every user ID but the given one. Feeds the
// notification fan-out.
func (r *UserRepository) ListIDsExcept(id uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.User{}).Where("id <> ?", id).Pluck("id", &ids).Error
	return ids, err
}
