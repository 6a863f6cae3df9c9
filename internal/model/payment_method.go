package model

import "gorm.io/datatypes"

// PaymentMethod 支付方式（银行转账、电子钱包等）
type PaymentMethod struct {
	BaseModel

	Name     string `gorm:"size:100;not null"`
	Code     string `gorm:"size:50;uniqueIndex;not null"` // bank_transfer, gopay, ovo...
	LogoURL  string `gorm:"size:500"`
	Rank     int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`

	// 账户详情（账号、户名等，结构随支付方式不同）
	Detail datatypes.JSONMap `gorm:"type:jsonb"`

	// 手续费（分），0 表示免手续费
	FeeAmount int64 `gorm:"default:0"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}
