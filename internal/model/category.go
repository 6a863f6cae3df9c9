package model

// Category 商品分类
type Category struct {
	BaseModel

	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Slug        string `gorm:"size:100;uniqueIndex"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:500"`
	Rank        int    `gorm:"default:0"` // 前台展示排序
	IsActive    bool   `gorm:"default:true"`
}

func (Category) TableName() string {
	return "categories"
}
