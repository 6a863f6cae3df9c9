package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"buysini_admin_202601/internal/service"
)

// ==================== CounterReconcileTask 角标对账任务 ====================

// CounterReconcileTask 待处理订单角标对账任务
// 角标平时靠事件增量维护，长连接断线或进程内丢事件后会漂移，
// 定时按数据库真值纠偏
type CounterReconcileTask struct {
	navService *service.NavService
	cron       *cron.Cron

	spec string
}

// NewCounterReconcileTask 创建角标对账任务
func NewCounterReconcileTask(navService *service.NavService) *CounterReconcileTask {
	return &CounterReconcileTask{
		navService: navService,
		cron:       cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:       "0 */5 * * * *",              // 每 5 分钟
	}
}

// SetSpec 覆盖默认的对账周期
func (t *CounterReconcileTask) SetSpec(spec string) {
	t.spec = spec
}

// Start 启动定时任务
func (t *CounterReconcileTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := t.navService.Reconcile(ctx); err != nil {
			log.Printf("[CounterReconcileTask] 对账失败: %v", err)
		}
	})
	if err != nil {
		log.Printf("[CounterReconcileTask] 注册失败: %v", err)
		return
	}

	t.cron.Start()
	log.Printf("[CounterReconcileTask] 已启动 (%s)", t.spec)
}

// Stop 停止任务
func (t *CounterReconcileTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[CounterReconcileTask] 已停止")
}

// ReconcileNow 手动触发一次对账
func (t *CounterReconcileTask) ReconcileNow(ctx context.Context) error {
	return t.navService.Reconcile(ctx)
}
