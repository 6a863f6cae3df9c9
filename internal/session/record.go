package session

import "time"

// ==================== 凭据键名 ====================

// 凭据存储键名
// admin / admin_token 是现行键；其余是历史版本留下的别名，
// 登出时必须一并清掉，否则旧版前端缓存会把人"复活"回后台
const (
	KeySession = "admin"       // 会话记录（JSON）
	KeyToken   = "admin_token" // 不透明访问令牌

	// 历史别名
	KeyLegacyUser    = "admin_user"
	KeyLegacyData    = "adminData"
	KeyLegacySession = "admin_session"
)

// CredentialKeys 登出时需要清除的全部键
func CredentialKeys() []string {
	return []string{
		KeySession,
		KeyToken,
		KeyLegacyUser,
		KeyLegacyData,
		KeyLegacySession,
	}
}

// ==================== Record 会话记录 ====================

// Record 已登录管理员的会话记录
type Record struct {
	SubjectID int64     `json:"subject_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"` // 展示名
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Valid 会话有效性不变式
// role 必须是 admin，email 和展示名必须非空；
// 其他任何形态一律按损坏处理，清库重登
func (r *Record) Valid() bool {
	return r.Role == "admin" && r.Email != "" && r.Name != ""
}
