package model

import (
	"time"

	"github.com/lib/pq"
)

// 折扣类型
const (
	PromoTypePercent = "percent" // 按比例
	PromoTypeFixed   = "fixed"   // 固定金额
)

// Promo 促销活动/优惠码
type Promo struct {
	BaseModel

	Code        string `gorm:"size:50;uniqueIndex;not null"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`

	DiscountType  string `gorm:"size:20;default:'percent'"` // percent, fixed
	DiscountValue int64  // percent: 百分比数值; fixed: 金额（分）
	MinSpend      int64  `gorm:"default:0"` // 最低消费门槛（分）

	// 适用分类，空数组表示全场 (Postgres Array)
	CategoryIDs pq.Int64Array `gorm:"type:bigint[]"`

	IsActive bool `gorm:"default:true"`
	StartAt  *time.Time
	EndAt    *time.Time

	UsageLimit int `gorm:"default:0"` // 0 表示不限次数
	UsedCount  int `gorm:"default:0"`
}

func (Promo) TableName() string {
	return "promos"
}

// IsRedeemable 当前是否可用
func (p *Promo) IsRedeemable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return false
	}
	return true
}
