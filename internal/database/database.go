package database

import (
	"log"

	"djibtrade/config"
	"djibtrade/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Notification{},
		&models.NotificationPreferences{},
		&models.Subscription{},
	)
}

// defaultCategories is the wholesale category set for the Djibouti market.
var defaultCategories = []string{
	"Huiles végétales & graisses",
	"Véhicules & pièces détachées",
	"Fer, acier & métaux industriels",
	"Sucres & produits sucrés",
	"Céréales & produits céréaliers",
	"Produits plastiques & dérivés",
	"Électronique & équipements électriques",
	"Aliments emballés / secs (farine, riz, etc.)",
	"Huile comestible (palme, tournesol)",
	"Produits pétroliers & lubrifiants",
	"Matériaux de construction (sable, ciment, ferraille)",
	"Sel & produits miniers",
	"Produits pharmaceutiques, hygiène & santé",
	"Produits de pêche / fruits de mer",
	"Textiles & vêtements en gros",
	"Accessoires auto & lubrifiants",
	"Fournitures de bureau & papeterie",
	"Produits ménagers & nettoyants",
}

// SeedCategories inserts the default category set when the table is empty.
func SeedCategories(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		log.Printf("[seed] count categories: %v", err)
		return
	}
	if count > 0 {
		return
	}
	for _, name := range defaultCategories {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			log.Printf("[seed] category %q: %v", name, err)
		}
	}
	log.Printf("[seed] inserted %d default categories", len(defaultCategories))
}
