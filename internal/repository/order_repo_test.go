package repository

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
)

// 测试用内存数据库
func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func seedOrder(t *testing.T, repo OrderRepository, no, status string) *model.Order {
	t.Helper()

	order := &model.Order{
		OrderNo:          no,
		CustomerName:     "Budi",
		CustomerEmail:    "budi@example.com",
		Status:           status,
		GrandTotalAmount: 150000,
		Currency:         "IDR",
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	return order
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()

	created := seedOrder(t, repo, "BS-20260101-0001", model.OrderStatusPending)

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.OrderNo != "BS-20260101-0001" {
		t.Errorf("got = %+v", got)
	}

	byNo, err := repo.GetByOrderNo(ctx, "BS-20260101-0001")
	if err != nil || byNo == nil || byNo.ID != created.ID {
		t.Errorf("byNo = %+v, err = %v", byNo, err)
	}

	// 不存在应返回 nil, nil
	missing, err := repo.GetByID(ctx, 99999)
	if err != nil || missing != nil {
		t.Errorf("missing = %+v, err = %v", missing, err)
	}
}

func TestOrderRepository_ListByStatus(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedOrder(t, repo, fmt.Sprintf("BS-P-%d", i), model.OrderStatusPending)
	}
	seedOrder(t, repo, "BS-S-0", model.OrderStatusShipped)

	orders, total, err := repo.List(ctx, OrderFilter{Status: model.OrderStatusPending})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(orders) != 3 {
		t.Errorf("total = %d, len = %d, want 3", total, len(orders))
	}
	for _, o := range orders {
		if o.Status != model.OrderStatusPending {
			t.Errorf("混入了非 pending 订单: %s", o.OrderNo)
		}
	}
}

func TestOrderRepository_CountByStatus(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, "BS-1", model.OrderStatusPending)
	seedOrder(t, repo, "BS-2", model.OrderStatusPending)
	seedOrder(t, repo, "BS-3", model.OrderStatusDelivered)

	count, err := repo.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	all, err := repo.CountByStatus(ctx, "")
	if err != nil || all != 3 {
		t.Errorf("all = %d, err = %v, want 3", all, err)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()

	order := seedOrder(t, repo, "BS-U-1", model.OrderStatusPending)

	if err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, _ := repo.GetByID(ctx, order.ID)
	if got.Status != model.OrderStatusProcessing {
		t.Errorf("status = %s, want processing", got.Status)
	}
}
