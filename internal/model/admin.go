package model

import "time"

// ==================== 管理员角色/状态常量 ====================

// 系统级角色: admin (管理员), operator (运营), viewer (只读)
// 会话守卫只放行 admin，其余角色进不了后台
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

const (
	AdminStatusDisabled = 0
	AdminStatusActive   = 1
)

// ==================== Admin 管理员账号 ====================

// Admin 后台管理员账号
type Admin struct {
	BaseModel

	Email    string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希，绝不存明文
	Name     string `gorm:"size:100;not null"` // 展示名，如 "Super Admin"

	Role   string `gorm:"size:20;default:'admin'"`
	Status int    `gorm:"default:1;index"`

	LastLoginAt *time.Time
}

func (Admin) TableName() string {
	return "admins"
}

// IsActive 账号是否可登录
func (a *Admin) IsActive() bool {
	return a.Status == AdminStatusActive
}
