package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
)

// ==================== 测试辅助 ====================

func setupNavTestRepo(t *testing.T, pendingSeed int) repository.OrderRepository {
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
			OrderNo: fmt.Sprintf("BS-NAV-%d", i),
			Status:  model.OrderStatusPending,
		}
		if err := repo.Create(context.Background(), order); err != nil {
			t.Fatalf("预置订单失败: %v", err)
		}
	}
	return repo
}

func newNavTestService(t *testing.T, pendingSeed int) (*NavService, *realtime.Hub) {
	t.Helper()

	hub := realtime.NewHub()
	svc := NewNavService(setupNavTestRepo(t, pendingSeed), hub)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc, hub
}

// waitCount 轮询等待角标达到期望值（事件消费是异步的）
func waitCount(t *testing.T, svc *NavService, want int64) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if svc.PendingCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("角标 = %d, want %d", svc.PendingCount(), want)
}

// ==================== 角标计数 ====================

func TestNavService_InitFromDatabase(t *testing.T) {
	svc, _ := newNavTestService(t, 3)

	if got := svc.PendingCount(); got != 3 {
		t.Errorf("初始角标 = %d, want 3", got)
	}
}

func TestNavService_IncrementOnPendingInsert(t *testing.T) {
	svc, hub := newNavTestService(t, 0)

	hub.Publish(realtime.Change{Table: "orders", Event: realtime.EventInsert, RowID: 1, Status: model.OrderStatusPending})
	waitCount(t, svc, 1)

	// 非 pending 插入不计数
	hub.Publish(realtime.Change{Table: "orders", Event: realtime.EventInsert, RowID: 2, Status: model.OrderStatusShipped})
	hub.Publish(realtime.Change{Table: "orders", Event: realtime.EventInsert, RowID: 3, Status: model.OrderStatusPending})
	waitCount(t, svc, 2)
}

func TestNavService_DecrementOnLeavingPending(t *testing.T) {
	svc, hub := newNavTestService(t, 2)

	hub.Publish(realtime.Change{
		Table: "orders", Event: realtime.EventUpdate, RowID: 1,
		Status: model.OrderStatusProcessing, OldStatus: model.OrderStatusPending,
	})
	waitCount(t, svc, 1)

	// 与 pending 无关的更新不影响计数
	hub.Publish(realtime.Change{
		Table: "orders", Event: realtime.EventUpdate, RowID: 2,
		Status: model.OrderStatusShipped, OldStatus: model.OrderStatusProcessing,
	})
	time.Sleep(20 * time.Millisecond)
	if got := svc.PendingCount(); got != 1 {
		t.Errorf("角标 = %d, want 1", got)
	}
}

func TestNavService_NeverGoesNegative(t *testing.T) {
	svc, hub := newNavTestService(t, 0)

	// 计数已经是 0，再收到离开 pending 的事件也不能变负
	hub.Publish(realtime.Change{
		Table: "orders", Event: realtime.EventUpdate, RowID: 9,
		Status: model.OrderStatusCanceled, OldStatus: model.OrderStatusPending,
	})
	time.Sleep(20 * time.Millisecond)
	if got := svc.PendingCount(); got != 0 {
		t.Errorf("角标 = %d, want 0", got)
	}
}

func TestNavService_Acknowledge(t *testing.T) {
	svc, _ := newNavTestService(t, 5)

	svc.Acknowledge()
	if got := svc.PendingCount(); got != 0 {
		t.Errorf("确认后角标 = %d, want 0", got)
	}
}

func TestNavService_ReconcileCorrectsDrift(t *testing.T) {
	svc, hub := newNavTestService(t, 2)

	// 伪造一堆没对应数据库行的事件，把内存计数推偏
	for i := 0; i < 4; i++ {
		hub.Publish(realtime.Change{
			Table: "orders", Event: realtime.EventInsert,
			RowID: int64(100 + i), Status: model.OrderStatusPending,
		})
	}
	waitCount(t, svc, 6)

	// 对账拉回数据库真实值
	if err := svc.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got := svc.PendingCount(); got != 2 {
		t.Errorf("对账后角标 = %d, want 2", got)
	}
}

// ==================== 角标订阅 ====================

func TestNavService_WatchCounter(t *testing.T) {
	svc, hub := newNavTestService(t, 0)

	ch := svc.WatchCounter()
	defer svc.UnwatchCounter(ch)

	hub.Publish(realtime.Change{Table: "orders", Event: realtime.EventInsert, RowID: 1, Status: model.OrderStatusPending})

	select {
	case got := <-ch:
		if got != 1 {
			t.Errorf("推送值 = %d, want 1", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("等待角标推送超时")
	}
}

// ==================== 菜单 ====================

func TestNavService_MenuBadge(t *testing.T) {
	svc, _ := newNavTestService(t, 4)

	state := svc.Menu("/admin/orders")
	if state.PendingCount != 4 {
		t.Errorf("PendingCount = %d, want 4", state.PendingCount)
	}

	var found bool
	for _, item := range state.Menu {
		if item.Key == "orders" {
			found = true
			if item.Badge != 4 {
				t.Errorf("orders badge = %d, want 4", item.Badge)
			}
		} else if item.Badge != 0 {
			t.Errorf("菜单 %s 不应有角标", item.Key)
		}
	}
	if !found {
		t.Error("菜单里没有 orders 项")
	}
}

// ==================== 折叠区域 ====================

func TestNavService_RegionDefaults(t *testing.T) {
	svc, _ := newNavTestService(t, 0)

	regions := svc.Regions("sid-a")
	if !regions[RegionSidebar] {
		t.Error("桌面侧边栏默认应展开")
	}
	if regions[RegionUserMenu] || regions[RegionMobileSidebar] || regions[RegionSettingsMenu] {
		t.Error("除侧边栏外的区域默认应收起")
	}
}

func TestNavService_PageTitle(t *testing.T) {
	svc, _ := newNavTestService(t, 0)

	cases := map[string]string{
		"/admin/orders":      "Orders",
		"/admin/orders/42":   "Orders",
		"/admin/order-items": "Order Items",
		"/admin/settings":    "Settings",
		"/somewhere/unknown": "",
	}
	for path, want := range cases {
		if got := svc.PageTitle(path); got != want {
			t.Errorf("PageTitle(%s) = %q, want %q", path, got, want)
		}
	}
}

func TestNavService_RegionIsolatedPerSession(t *testing.T) {
	svc, _ := newNavTestService(t, 0)

	svc.SetRegion("sid-a", RegionUserMenu, true)

	if !svc.Regions("sid-a")[RegionUserMenu] {
		t.Error("sid-a 的用户菜单应为展开")
	}
	if svc.Regions("sid-b")[RegionUserMenu] {
		t.Error("sid-b 不应受 sid-a 影响")
	}
}

func TestNavService_RouteChangeClosesOverlays(t *testing.T) {
	svc, _ := newNavTestService(t, 3)

	svc.SetRegion("sid-a", RegionMobileSidebar, true)
	svc.SetRegion("sid-a", RegionUserMenu, true)

	svc.OnRouteChange("sid-a", "/admin/products")

	regions := svc.Regions("sid-a")
	if regions[RegionMobileSidebar] || regions[RegionUserMenu] {
		t.Error("切路由后遮罩区域应全部收起")
	}
	// 没进订单页，角标不动
	if got := svc.PendingCount(); got != 3 {
		t.Errorf("角标 = %d, want 3", got)
	}

	// 进订单页视为已查看
	svc.OnRouteChange("sid-a", "/admin/orders")
	if got := svc.PendingCount(); got != 0 {
		t.Errorf("进订单页后角标 = %d, want 0", got)
	}
}
