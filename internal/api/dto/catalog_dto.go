package dto

import "time"

// ==================== 商品 ====================

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	CategoryID     int64    `json:"category_id" binding:"required"`
	SKU            string   `json:"sku" binding:"required,max=64"`
	Name           string   `json:"name" binding:"required,max=255"`
	Description    string   `json:"description"`
	Status         string   `json:"status" binding:"omitempty,oneof=active inactive draft"`
	PriceAmount    int64    `json:"price_amount" binding:"required,min=0"`
	OriginalAmount int64    `json:"original_amount"`
	Stock          int      `json:"stock" binding:"min=0"`
	Tags           []string `json:"tags"`
	ImageURLs      []string `json:"image_urls"`
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	CategoryID     *int64   `json:"category_id,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Status         *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive draft"`
	PriceAmount    *int64   `json:"price_amount,omitempty"`
	OriginalAmount *int64   `json:"original_amount,omitempty"`
	Stock          *int     `json:"stock,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// ListProductsRequest 商品列表请求
type ListProductsRequest struct {
	CategoryID int64  `form:"category_id"`
	Status     string `form:"status"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID             int64     `json:"id"`
	CategoryID     int64     `json:"category_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	PriceAmount    int64     `json:"price_amount"`
	OriginalAmount int64     `json:"original_amount,omitempty"`
	Stock          int       `json:"stock"`
	Tags           []string  `json:"tags,omitempty"`
	ImageURLs      []string  `json:"image_urls,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ==================== 分类 ====================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"omitempty,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Rank        int    `json:"rank"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Rank        *int    `json:"rank,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Rank        int    `json:"rank"`
	IsActive    bool   `json:"is_active"`
}

// ==================== 轮播图 ====================

// SaveBannerRequest 创建/更新轮播图请求
type SaveBannerRequest struct {
	Title    string     `json:"title" binding:"required,max=255"`
	ImageURL string     `json:"image_url" binding:"required"`
	LinkURL  string     `json:"link_url"`
	Rank     int        `json:"rank"`
	IsActive bool       `json:"is_active"`
	StartAt  *time.Time `json:"start_at,omitempty"`
	EndAt    *time.Time `json:"end_at,omitempty"`
}

// BannerResponse 轮播图响应
type BannerResponse struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	ImageURL string     `json:"image_url"`
	LinkURL  string     `json:"link_url,omitempty"`
	Rank     int        `json:"rank"`
	IsActive bool       `json:"is_active"`
	IsLive   bool       `json:"is_live"` // 当前是否在投放窗口内
	StartAt  *time.Time `json:"start_at,omitempty"`
	EndAt    *time.Time `json:"end_at,omitempty"`
}

// ==================== 促销 ====================

// SavePromoRequest 创建/更新促销请求
type SavePromoRequest struct {
	Code          string     `json:"code" binding:"required,max=50"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue int64      `json:"discount_value" binding:"required,min=1"`
	MinSpend      int64      `json:"min_spend"`
	CategoryIDs   []int64    `json:"category_ids"`
	IsActive      bool       `json:"is_active"`
	StartAt       *time.Time `json:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	UsageLimit    int        `json:"usage_limit"`
}

// PromoResponse 促销响应
type PromoResponse struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Title         string     `json:"title,omitempty"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue int64      `json:"discount_value"`
	MinSpend      int64      `json:"min_spend"`
	CategoryIDs   []int64    `json:"category_ids,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsRedeemable  bool       `json:"is_redeemable"`
	StartAt       *time.Time `json:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	UsageLimit    int        `json:"usage_limit"`
	UsedCount     int        `json:"used_count"`
}

// ==================== 客户 ====================

// SaveCustomerRequest 创建/更新客户请求
type SaveCustomerRequest struct {
	Name    string                 `json:"name" binding:"required,max=255"`
	Email   string                 `json:"email" binding:"omitempty,email"`
	Phone   string                 `json:"phone"`
	Address map[string]interface{} `json:"address"`
}

// CustomerResponse 客户响应
type CustomerResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email,omitempty"`
	Phone       string                 `json:"phone,omitempty"`
	Address     map[string]interface{} `json:"address,omitempty"`
	OrderCount  int                    `json:"order_count"`
	TotalAmount int64                  `json:"total_amount"`
	LastOrderAt *time.Time             `json:"last_order_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ==================== 支付 / 物流方式 ====================

// SavePaymentMethodRequest 创建/更新支付方式请求
type SavePaymentMethodRequest struct {
	Name      string                 `json:"name" binding:"required,max=100"`
	Code      string                 `json:"code" binding:"required,max=50"`
	LogoURL   string                 `json:"logo_url"`
	Rank      int                    `json:"rank"`
	IsActive  bool                   `json:"is_active"`
	Detail    map[string]interface{} `json:"detail"`
	FeeAmount int64                  `json:"fee_amount"`
}

// SaveShippingMethodRequest 创建/更新物流方式请求
type SaveShippingMethodRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Code          string `json:"code" binding:"required,max=50"`
	LogoURL       string `json:"logo_url"`
	Rank          int    `json:"rank"`
	IsActive      bool   `json:"is_active"`
	BaseFeeAmount int64  `json:"base_fee_amount"`
	PerKgAmount   int64  `json:"per_kg_amount"`
	EtaDaysMin    int    `json:"eta_days_min"`
	EtaDaysMax    int    `json:"eta_days_max"`
}
