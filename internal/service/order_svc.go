package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrOrderNotFound     = errors.New("订单不存在")
	ErrProductNotFound   = errors.New("商品不存在")
	ErrInsufficientStock = errors.New("库存不足")
	ErrInvalidTransition = errors.New("不允许的状态变更")
	ErrOrderAlreadyPaid  = errors.New("订单已支付")
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
// 所有写操作完成后向变更总线发事件，角标/SSE/webhook 都在下游
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	hub          *realtime.Hub
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	hub *realtime.Hub,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		hub:          hub,
	}
}

// ==================== 创建 ====================

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// 组装行项目，锁价格快照
	var items []model.OrderItem
	var subtotal int64
	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if product.Stock < line.Quantity {
			return nil, ErrInsufficientStock
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0].URL
		}

		lineTotal := product.PriceAmount * int64(line.Quantity)
		subtotal += lineTotal
		items = append(items, model.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: image,
			Quantity:     line.Quantity,
			PriceAmount:  product.PriceAmount,
			TotalAmount:  lineTotal,
		})
	}

	order := &model.Order{
		OrderNo:          generateOrderNo(),
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		Status:           model.OrderStatusPending,
		ShippingAddress:  datatypes.JSONMap(req.ShippingAddress),
		SubtotalAmount:   subtotal,
		ShippingAmount:   req.ShippingAmount,
		DiscountAmount:   req.DiscountAmount,
		GrandTotalAmount: subtotal + req.ShippingAmount - req.DiscountAmount,
		Currency:         "IDR",
		PaymentMethodID:  req.PaymentMethodID,
		ShippingMethodID: req.ShippingMethodID,
		Note:             req.Note,
		Items:            items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// 扣库存、累加客户统计，失败不回滚订单，只记日志
	for _, item := range items {
		if err := s.productRepo.UpdateStock(ctx, item.ProductID, -item.Quantity); err != nil {
			log.Printf("[Order] 扣库存失败 product=%d: %v", item.ProductID, err)
		}
	}
	if order.CustomerID > 0 {
		if err := s.customerRepo.IncrOrderStats(ctx, order.CustomerID, order.GrandTotalAmount); err != nil {
			log.Printf("[Order] 更新客户统计失败 customer=%d: %v", order.CustomerID, err)
		}
	}

	// 新 pending 订单，通知下游
	s.hub.Publish(realtime.Change{
		Table:  "orders",
		Event:  realtime.EventInsert,
		RowID:  order.ID,
		Status: order.Status,
	})

	return s.toOrderResponse(order), nil
}

// ==================== 查询 ====================

// GetOrder 订单详情
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.toOrderResponse(order), nil
}

// ListOrders 订单列表
func (s *OrderService) ListOrders(ctx context.Context, req *dto.ListOrdersRequest) (*dto.OrderListResponse, error) {
	filter := repository.OrderFilter{
		Status:   req.Status,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			filter.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.EndDate = &end
		}
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.OrderListResponse{Total: total, Orders: make([]dto.OrderResponse, 0, len(orders))}
	for i := range orders {
		resp.Orders = append(resp.Orders, *s.toOrderResponse(&orders[i]))
	}
	return resp, nil
}

// ==================== 状态变更 ====================

// UpdateStatus 推进订单状态
// 非法跳转直接拒绝；成功后带新旧状态发事件，角标靠 OldStatus 做增减
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	oldStatus := order.Status
	if !order.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, oldStatus, req.Status)
	}

	order.Status = req.Status
	if req.Status == model.OrderStatusShipped {
		now := time.Now()
		order.ShippedAt = &now
		order.TrackingNo = req.TrackingNo
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Change{
		Table:     "orders",
		Event:     realtime.EventUpdate,
		RowID:     order.ID,
		Status:    order.Status,
		OldStatus: oldStatus,
	})

	return s.toOrderResponse(order), nil
}

// MarkPaid 标记已支付
func (s *OrderService) MarkPaid(ctx context.Context, id int64, req *dto.MarkPaidRequest) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	if req.PaymentMethodID > 0 {
		order.PaymentMethodID = req.PaymentMethodID
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Change{
		Table:     "orders",
		Event:     realtime.EventUpdate,
		RowID:     order.ID,
		Status:    order.Status,
		OldStatus: order.Status,
	})

	return s.toOrderResponse(order), nil
}

// DeleteOrder 删除订单（软删）
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(realtime.Change{
		Table:  "orders",
		Event:  realtime.EventDelete,
		RowID:  id,
		Status: order.Status,
	})
	return nil
}

// ==================== 内部工具 ====================

// generateOrderNo 生成对外订单号: BS-20260102-150405-1234
func generateOrderNo() string {
	now := time.Now()
	return fmt.Sprintf("BS-%s-%04d", now.Format("20060102-150405"), now.UnixNano()%10000)
}

// toOrderResponse 转换为响应 DTO
func (s *OrderService) toOrderResponse(order *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			PriceAmount:  item.PriceAmount,
			TotalAmount:  item.TotalAmount,
		})
	}

	return &dto.OrderResponse{
		ID:               order.ID,
		OrderNo:          order.OrderNo,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		Status:           order.Status,
		ShippingAddress:  order.ShippingAddress,
		SubtotalAmount:   order.SubtotalAmount,
		ShippingAmount:   order.ShippingAmount,
		DiscountAmount:   order.DiscountAmount,
		GrandTotalAmount: order.GrandTotalAmount,
		Currency:         order.Currency,
		IsPaid:           order.IsPaid,
		PaidAt:           order.PaidAt,
		ShippedAt:        order.ShippedAt,
		TrackingNo:       order.TrackingNo,
		Note:             order.Note,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}
