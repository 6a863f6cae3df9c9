package task

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/service"
	"buysini_admin_202601/internal/session"
)

// ==================== 测试辅助 ====================

func setupTaskTestOrderRepo(t *testing.T, pendingSeed int) repository.OrderRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	repo := repository.NewOrderRepository(db)
	for i := 0; i < pendingSeed; i++ {
		order := &model.Order{
			OrderNo: fmt.Sprintf("BS-TASK-%d", i),
			Status:  model.OrderStatusPending,
		}
		if err := repo.Create(context.Background(), order); err != nil {
			t.Fatalf("预置订单失败: %v", err)
		}
	}
	return repo
}

// ==================== 角标对账 ====================

func TestCounterReconcileTask_ReconcileNow(t *testing.T) {
	repo := setupTaskTestOrderRepo(t, 4)
	hub := realtime.NewHub()

	navService := service.NewNavService(repo, hub)
	if err := navService.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(navService.Stop)

	// 人为制造漂移
	navService.Acknowledge()
	if navService.PendingCount() != 0 {
		t.Fatalf("清零后角标 = %d, want 0", navService.PendingCount())
	}

	task := NewCounterReconcileTask(navService)
	if err := task.ReconcileNow(context.Background()); err != nil {
		t.Fatalf("ReconcileNow: %v", err)
	}

	if got := navService.PendingCount(); got != 4 {
		t.Errorf("对账后角标 = %d, want 4", got)
	}
}

// ==================== 会话清扫 ====================

func TestSessionSweepTask_SweepNow(t *testing.T) {
	ctx := context.Background()

	persistent := session.NewMemoryStore(time.Hour)
	scoped := session.NewMemoryStore(time.Hour)
	provider := session.NewProvider(persistent, scoped, time.Hour)

	// 会话级存储写入一个已过期和一个未过期的键
	if err := scoped.Set(ctx, "sid-a", "ui_state", "open", 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := scoped.Set(ctx, "sid-b", "ui_state", "closed", time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	task := NewSessionSweepTask(provider)
	if n := task.SweepNow(); n != 1 {
		t.Errorf("清理条数 = %d, want 1", n)
	}

	if _, err := scoped.Get(ctx, "sid-a", "ui_state"); !errors.Is(err, session.ErrKeyNotFound) {
		t.Errorf("过期键应已清除, err = %v", err)
	}
	if _, err := scoped.Get(ctx, "sid-b", "ui_state"); err != nil {
		t.Errorf("未过期键不应被清除, err = %v", err)
	}
}
