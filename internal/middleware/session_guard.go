package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/session"
)

// ==================== SessionGuard 会话守卫 ====================

// Context key，放行后的会话记录
const ContextKeySessionRecord = "session_record"

// SessionGuard 后台会话守卫
// 在 JWTAuth 之后挂载：Token 只证明请求没被篡改，
// 凭据本体在会话存储里，这里按存储内容做放行判断。
// 只查存储不查库，守卫本身不产生数据库往返。
//
// 三种出口：
//   - 无会话      → 401, reason=no_session，前端跳登录页
//   - 会话损坏    → 401, reason=corrupt_session，存储键已被清空
//   - 校验通过    → 记录注入 context，放行
func SessionGuard(provider *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := GetSID(c)
		if sid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "会话标识缺失",
				"data":    gin.H{"reason": "no_session"},
			})
			c.Abort()
			return
		}

		rec, err := provider.Read(c.Request.Context(), sid)
		if err != nil {
			reason := "no_session"
			message := "未登录或会话已过期"
			if errors.Is(err, session.ErrCorruptSession) {
				reason = "corrupt_session"
				message = "会话数据异常，请重新登录"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": message,
				"data":    gin.H{"reason": reason},
			})
			c.Abort()
			return
		}

		c.Set(ContextKeySessionRecord, rec)
		c.Next()
	}
}

// GetSessionRecord 从 Context 获取守卫放行的会话记录
func GetSessionRecord(c *gin.Context) *session.Record {
	if rec, exists := c.Get(ContextKeySessionRecord); exists {
		return rec.(*session.Record)
	}
	return nil
}
