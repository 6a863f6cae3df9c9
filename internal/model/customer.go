package model

import (
	"time"

	"gorm.io/datatypes"
)

// Customer 店铺客户
type Customer struct {
	BaseModel

	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;uniqueIndex"`
	Phone string `gorm:"size:32;index"`

	// 默认收货地址（PostgreSQL JSONB）
	Address datatypes.JSONMap `gorm:"type:jsonb"`

	IsActive    bool `gorm:"default:true"`
	LastOrderAt *time.Time

	// 统计字段（下单时累加，避免列表页联表）
	OrderCount  int   `gorm:"default:0"`
	TotalAmount int64 `gorm:"default:0"` // 累计消费（分）
}

func (Customer) TableName() string {
	return "customers"
}
