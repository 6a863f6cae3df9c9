package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
)

// ==================== 测试辅助 ====================

// stubProductRepo 内存商品仓库，避开 sqlite 不支持的数组列
type stubProductRepo struct {
	repository.ProductRepository
	products map[int64]*model.Product
	stock    map[int64]int
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{
		products: make(map[int64]*model.Product),
		stock:    make(map[int64]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
		r.stock[p.ID] = p.Stock
	}
	return r
}

func (r *stubProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return r.products[id], nil
}

func (r *stubProductRepo) UpdateStock(ctx context.Context, id int64, delta int) error {
	r.stock[id] += delta
	return nil
}

// stubCustomerRepo 记录统计调用
type stubCustomerRepo struct {
	repository.CustomerRepository
	statCalls int
}

func (r *stubCustomerRepo) IncrOrderStats(ctx context.Context, id int64, amount int64) error {
	r.statCalls++
	return nil
}

func newOrderTestService(t *testing.T) (*OrderService, *stubProductRepo, *stubCustomerRepo, *realtime.Hub) {
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

	product := &model.Product{
		BaseModel:   model.BaseModel{ID: 1},
		Name:        "Batik Shirt",
		PriceAmount: 25000,
		Stock:       10,
	}
	productRepo := newStubProductRepo(product)
	customerRepo := &stubCustomerRepo{}
	hub := realtime.NewHub()

	svc := NewOrderService(repository.NewOrderRepository(db), productRepo, customerRepo, hub)
	return svc, productRepo, customerRepo, hub
}

// ==================== 创建 ====================

func TestOrderService_CreateOrderPublishesInsert(t *testing.T) {
	svc, productRepo, customerRepo, hub := newOrderTestService(t)
	ctx := context.Background()

	sub := hub.Subscribe("orders", nil)
	defer hub.Unsubscribe(sub)

	resp, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{
		CustomerID:   5,
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if resp.Status != model.OrderStatusPending {
		t.Errorf("新订单状态 = %s, want pending", resp.Status)
	}
	if resp.GrandTotalAmount != 50000 {
		t.Errorf("总额 = %d, want 50000", resp.GrandTotalAmount)
	}
	if resp.OrderNo == "" {
		t.Error("应生成订单号")
	}

	// 库存扣减、客户统计
	if productRepo.stock[1] != 8 {
		t.Errorf("库存 = %d, want 8", productRepo.stock[1])
	}
	if customerRepo.statCalls != 1 {
		t.Errorf("统计调用 = %d, want 1", customerRepo.statCalls)
	}

	// 变更总线上应有一条 pending INSERT
	select {
	case c := <-sub.C:
		if c.Event != realtime.EventInsert || c.Status != model.OrderStatusPending {
			t.Errorf("事件 = %+v", c)
		}
	default:
		t.Error("未收到订单创建事件")
	}
}

func TestOrderService_CreateOrderInsufficientStock(t *testing.T) {
	svc, _, _, _ := newOrderTestService(t)

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 99}},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock", err)
	}
}

// ==================== 状态机 ====================

func TestOrderService_UpdateStatusPublishesOldStatus(t *testing.T) {
	svc, _, _, hub := newOrderTestService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	sub := hub.Subscribe("orders", nil)
	defer hub.Unsubscribe(sub)

	resp, err := svc.UpdateStatus(ctx, created.ID, &dto.UpdateOrderStatusRequest{Status: model.OrderStatusProcessing})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if resp.Status != model.OrderStatusProcessing {
		t.Errorf("状态 = %s, want processing", resp.Status)
	}

	// 角标靠 OldStatus 判断增减，必须带上
	select {
	case c := <-sub.C:
		if c.Event != realtime.EventUpdate || c.OldStatus != model.OrderStatusPending || c.Status != model.OrderStatusProcessing {
			t.Errorf("事件 = %+v", c)
		}
	default:
		t.Error("未收到状态变更事件")
	}
}

func TestOrderService_RejectsInvalidTransition(t *testing.T) {
	svc, _, _, _ := newOrderTestService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// pending 不能直接跳 delivered
	_, err = svc.UpdateStatus(ctx, created.ID, &dto.UpdateOrderStatusRequest{Status: model.OrderStatusDelivered})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestOrderService_MarkPaidTwice(t *testing.T) {
	svc, _, _, _ := newOrderTestService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.MarkPaid(ctx, created.ID, &dto.MarkPaidRequest{}); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	_, err = svc.MarkPaid(ctx, created.ID, &dto.MarkPaidRequest{})
	if !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Errorf("err = %v, want ErrOrderAlreadyPaid", err)
	}
}

// ==================== 删除 ====================

func TestOrderService_DeletePublishesDelete(t *testing.T) {
	svc, _, _, hub := newOrderTestService(t)
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.CreateOrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	sub := hub.Subscribe("orders", nil)
	defer hub.Unsubscribe(sub)

	if err := svc.DeleteOrder(ctx, created.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	select {
	case c := <-sub.C:
		if c.Event != realtime.EventDelete || c.Status != model.OrderStatusPending {
			t.Errorf("事件 = %+v", c)
		}
	default:
		t.Error("未收到删除事件")
	}

	if _, err := svc.GetOrder(ctx, created.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}
