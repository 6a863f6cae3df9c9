package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"buysini_admin_202601/internal/session"
)

// ==================== SessionSweepTask 会话清扫任务 ====================

// SessionSweepTask 过期会话清扫任务
// 内存存储不会自动过期，定时把超时的会话整组清掉
type SessionSweepTask struct {
	provider *session.Provider
	cron     *cron.Cron

	spec string
}

// NewSessionSweepTask 创建会话清扫任务
func NewSessionSweepTask(provider *session.Provider) *SessionSweepTask {
	return &SessionSweepTask{
		provider: provider,
		cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:     "0 0 * * * *",                // 每小时整点
	}
}

// SetSpec 覆盖默认的清扫周期
func (t *SessionSweepTask) SetSpec(spec string) {
	t.spec = spec
}

// Start 启动定时任务
func (t *SessionSweepTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		if n := t.provider.SweepScoped(); n > 0 {
			log.Printf("[SessionSweepTask] 清理过期会话 %d 个", n)
		}
	})
	if err != nil {
		log.Printf("[SessionSweepTask] 注册失败: %v", err)
		return
	}

	t.cron.Start()
	log.Printf("[SessionSweepTask] 已启动 (%s)", t.spec)
}

// Stop 停止任务
func (t *SessionSweepTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[SessionSweepTask] 已停止")
}

// SweepNow 手动触发一次清扫
func (t *SessionSweepTask) SweepNow() int {
	return t.provider.SweepScoped()
}
