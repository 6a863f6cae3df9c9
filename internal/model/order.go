package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
// pending 是侧边栏角标统计的"待处理标记"
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCanceled   = "canceled"   // 已取消
)

// ==================== Order 订单主表 ====================

// Order 订单
type Order struct {
	BaseModel

	OrderNo    string `gorm:"size:64;uniqueIndex;not null"` // 对外订单号
	CustomerID int64  `gorm:"index"`

	// 买家信息（下单快照，客户资料改了也不影响历史单）
	CustomerName  string `gorm:"size:255"`
	CustomerEmail string `gorm:"size:255"`
	CustomerPhone string `gorm:"size:32"`

	// 状态
	Status string `gorm:"size:32;index;default:pending"`

	// 收货地址（PostgreSQL JSONB）
	ShippingAddress datatypes.JSONMap `gorm:"type:jsonb"`

	// 金额（分为单位存储）
	SubtotalAmount   int64
	ShippingAmount   int64
	DiscountAmount   int64
	GrandTotalAmount int64
	Currency         string `gorm:"size:10;default:IDR"`

	// 支付 / 物流方式
	PaymentMethodID  int64 `gorm:"index"`
	ShippingMethodID int64 `gorm:"index"`
	IsPaid           bool  `gorm:"default:false"`
	PaidAt           *time.Time

	// 发货
	ShippedAt  *time.Time
	TrackingNo string `gorm:"size:100"`

	// 备注
	Note string `gorm:"type:text"`

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (*Order) TableName() string {
	return "orders"
}

// GetGrandTotal 获取总金额（元）
func (o *Order) GetGrandTotal() float64 {
	return float64(o.GrandTotalAmount) / 100
}

// IsPending 是否计入待处理角标
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// CanTransitionTo 状态机校验
func (o *Order) CanTransitionTo(next string) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCanceled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCanceled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// ==================== OrderItem 订单明细 ====================

// OrderItem 订单行项目
type OrderItem struct {
	BaseModel

	OrderID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index"`

	// 商品快照
	ProductName  string `gorm:"size:255"`
	ProductImage string `gorm:"size:500"`

	Quantity    int   `gorm:"default:1"`
	PriceAmount int64 // 单价（分）
	TotalAmount int64 // 行小计（分）
}

func (*OrderItem) TableName() string {
	return "order_items"
}
