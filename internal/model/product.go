package model

import (
	"github.com/lib/pq"
)

// 商品状态
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDraft    = "draft"
)

// Product 商品
type Product struct {
	BaseModel

	CategoryID int64     `gorm:"index;not null"`
	Category   *Category `gorm:"foreignKey:CategoryID"`

	SKU         string `gorm:"size:100;uniqueIndex"`
	Name        string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:20;index;default:'draft'"` // active, inactive, draft

	// --- 价格与库存（分为单位存储） ---
	PriceAmount    int64  `gorm:"default:0"`
	OriginalAmount int64  `gorm:"default:0"` // 划线价，0 表示无折扣
	Currency       string `gorm:"size:10;default:IDR"`
	Stock          int    `gorm:"default:0"`

	// --- 标签 (Postgres Array) ---
	Tags pq.StringArray `gorm:"type:text[]"`

	// --- 关联关系 ---
	Images []ProductImage `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// GetPrice 获取售价（元）
func (p *Product) GetPrice() float64 {
	return float64(p.PriceAmount) / 100
}

// ProductImage 商品图片
type ProductImage struct {
	BaseModel

	ProductID int64  `gorm:"index;not null"`
	URL       string `gorm:"size:500;not null"`
	Rank      int    `gorm:"default:0"` // 排序，0 为主图
}

func (ProductImage) TableName() string {
	return "product_images"
}
