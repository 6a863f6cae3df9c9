package middleware

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ==================== LoginRateLimiter 登录限流器 ====================

// LoginRateLimiter 登录尝试限流器
// 防止同一邮箱被脚本反复试密码
type LoginRateLimiter struct {
	locks sync.Map // key -> *attemptEntry
}

// attemptEntry 尝试记录
type attemptEntry struct {
	mu        sync.Mutex
	failures  int
	windowEnd time.Time
}

// 全局限流器实例
var globalLoginLimiter = &LoginRateLimiter{}

// GetLoginLimiter 获取全局登录限流器
func GetLoginLimiter() *LoginRateLimiter {
	return globalLoginLimiter
}

// 连续失败上限和冷却窗口
const (
	maxFailures    = 5
	cooldownWindow = 10 * time.Minute
)

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查某邮箱当前是否允许再次尝试登录
func (r *LoginRateLimiter) Check(email string) CheckResult {
	actual, ok := r.locks.Load(loginKey(email))
	if !ok {
		return CheckResult{Allowed: true}
	}

	entry := actual.(*attemptEntry)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		// 窗口已过，重新计数
		entry.failures = 0
		return CheckResult{Allowed: true}
	}

	if entry.failures >= maxFailures {
		return CheckResult{
			Allowed:    false,
			RetryAfter: entry.windowEnd.Sub(now),
		}
	}
	return CheckResult{Allowed: true}
}

// MarkFailure 记录一次失败尝试
func (r *LoginRateLimiter) MarkFailure(email string) {
	actual, _ := r.locks.LoadOrStore(loginKey(email), &attemptEntry{})
	entry := actual.(*attemptEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.failures = 0
	}
	entry.failures++
	entry.windowEnd = now.Add(cooldownWindow)
}

// Reset 登录成功后清除该邮箱的失败记录
func (r *LoginRateLimiter) Reset(email string) {
	r.locks.Delete(loginKey(email))
}

// loginKey 生成限流键
func loginKey(email string) string {
	return fmt.Sprintf("login:%s", strings.ToLower(email))
}
