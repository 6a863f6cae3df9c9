package dto

import "time"

// ==================== 请求 DTO ====================

// CreateOrderRequest 创建订单请求（后台代客下单/导入）
type CreateOrderRequest struct {
	CustomerID    int64                  `json:"customer_id"`
	CustomerName  string                 `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string                 `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string                 `json:"customer_phone"`

	ShippingAddress map[string]interface{} `json:"shipping_address"`

	PaymentMethodID  int64 `json:"payment_method_id"`
	ShippingMethodID int64 `json:"shipping_method_id"`
	ShippingAmount   int64 `json:"shipping_amount"`
	DiscountAmount   int64 `json:"discount_amount"`

	Note  string                   `json:"note"`
	Items []CreateOrderItemRequest `json:"items" binding:"required,min=1"`
}

// CreateOrderItemRequest 订单行项目
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=pending processing shipped delivered canceled"`
	TrackingNo string `json:"tracking_no"`
}

// MarkPaidRequest 标记已支付请求
type MarkPaidRequest struct {
	PaymentMethodID int64 `json:"payment_method_id"`
}

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Status    string `form:"status"`
	Keyword   string `form:"keyword"`
	StartDate string `form:"start_date"` // 2026-01-02 格式
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// OrderResponse 订单响应
type OrderResponse struct {
	ID         int64  `json:"id"`
	OrderNo    string `json:"order_no"`
	CustomerID int64  `json:"customer_id"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	Status string `json:"status"`

	ShippingAddress map[string]interface{} `json:"shipping_address"`

	SubtotalAmount   int64  `json:"subtotal_amount"`
	ShippingAmount   int64  `json:"shipping_amount"`
	DiscountAmount   int64  `json:"discount_amount"`
	GrandTotalAmount int64  `json:"grand_total_amount"`
	Currency         string `json:"currency"`

	IsPaid     bool       `json:"is_paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	ShippedAt  *time.Time `json:"shipped_at,omitempty"`
	TrackingNo string     `json:"tracking_no,omitempty"`

	Note      string              `json:"note,omitempty"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderItemResponse 订单行项目响应
type OrderItemResponse struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image,omitempty"`
	Quantity     int    `json:"quantity"`
	PriceAmount  int64  `json:"price_amount"`
	TotalAmount  int64  `json:"total_amount"`
}

// OrderListResponse 订单列表响应
type OrderListResponse struct {
	Total  int64           `json:"total"`
	Orders []OrderResponse `json:"orders"`
}
