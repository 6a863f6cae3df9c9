package model

// ShippingMethod 物流方式/快递公司
type ShippingMethod struct {
	BaseModel

	Name     string `gorm:"size:100;not null"` // 如 JNE、J&T、SiCepat
	Code     string `gorm:"size:50;uniqueIndex;not null"`
	LogoURL  string `gorm:"size:500"`
	Rank     int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`

	// 运费（分）
	BaseFeeAmount int64 `gorm:"default:0"` // 首重/基础运费
	PerKgAmount   int64 `gorm:"default:0"` // 续重每公斤

	// 预计送达天数
	EtaDaysMin int `gorm:"default:1"`
	EtaDaysMax int `gorm:"default:3"`
}

func (ShippingMethod) TableName() string {
	return "shipping_methods"
}
