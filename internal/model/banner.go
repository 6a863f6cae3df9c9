package model

import "time"

// Banner 首页轮播图
type Banner struct {
	BaseModel

	Title    string `gorm:"size:255;not null"`
	ImageURL string `gorm:"size:500;not null"`
	LinkURL  string `gorm:"size:500"` // 点击跳转地址，可为空
	Rank     int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`

	// 投放时间窗口，空表示长期有效
	StartAt *time.Time
	EndAt   *time.Time
}

func (Banner) TableName() string {
	return "banners"
}

// IsLive 当前时间是否在投放窗口内
func (b *Banner) IsLive(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartAt != nil && now.Before(*b.StartAt) {
		return false
	}
	if b.EndAt != nil && now.After(*b.EndAt) {
		return false
	}
	return true
}
