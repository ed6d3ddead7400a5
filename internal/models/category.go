package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
