package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null;size:80"`

	// association (view side; links are owned through the join model)
	BookCategories []BookCategory `json:"-" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}
