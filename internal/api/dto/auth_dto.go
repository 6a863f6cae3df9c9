package dto

import "time"

// ==================== 请求 DTO ====================

// LoginRequest 登录请求
// 只校验非空，不做格式校验：账号是否放行由密码比对决定，
// 直接插库预置的账号不受邮箱格式、密码长度限制
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=admin operator viewer"`
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin operator viewer"`
	Status *int    `json:"status,omitempty" binding:"omitempty,oneof=0 1"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ListAdminsRequest 管理员列表请求
type ListAdminsRequest struct {
	Keyword  string `form:"keyword"`
	Role     string `form:"role"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ==================== 响应 DTO ====================

// LoginResponse 登录响应
// RedirectTo 告诉前端落地页（登录成功固定进仪表盘）
type LoginResponse struct {
	Token      string     `json:"token"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Admin      *AdminResp `json:"admin"`
	RedirectTo string     `json:"redirect_to"`
}

// LogoutResponse 登出响应
// 无论后端注销成败，本地凭据都已清除，前端按 RedirectTo 跳登录页
type LogoutResponse struct {
	RedirectTo string `json:"redirect_to"`
}

// AdminResp 管理员信息响应
// 注意：密码哈希绝不返回
type AdminResp struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      int        `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SessionResp 当前会话响应
type SessionResp struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issued_at"`
}
