package dto

// ==================== 导航 ====================

// MenuItemResponse 侧边栏菜单项
// Badge 目前只有订单菜单用（待处理数），为 0 时前端不渲染角标
type MenuItemResponse struct {
	Key      string             `json:"key"`
	Label    string             `json:"label"`
	Icon     string             `json:"icon"`
	Path     string             `json:"path"`
	Badge    int64              `json:"badge,omitempty"`
	Children []MenuItemResponse `json:"children,omitempty"`
}

// NavStateResponse 导航整体状态
type NavStateResponse struct {
	Menu         []MenuItemResponse `json:"menu"`
	PendingCount int64              `json:"pending_count"`
	ActivePath   string             `json:"active_path,omitempty"`
}

// RegionStateRequest 折叠区域状态上报
type RegionStateRequest struct {
	Region string `json:"region" binding:"required,oneof=sidebar usermenu mobile_sidebar settings_menu"`
	Open   bool   `json:"open"`
}
