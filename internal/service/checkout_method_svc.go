package service

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrMethodNotFound   = errors.New("结算方式不存在")
	ErrMethodCodeExists = errors.New("结算方式编码已存在")
)

// ==================== CheckoutMethodService 结算方式服务 ====================

// CheckoutMethodService 支付方式与物流方式的管理
// 两者都是带排序的小字典表，放一个服务里
type CheckoutMethodService struct {
	paymentRepo  repository.PaymentMethodRepository
	shippingRepo repository.ShippingMethodRepository
}

// NewCheckoutMethodService 创建结算方式服务
func NewCheckoutMethodService(
	paymentRepo repository.PaymentMethodRepository,
	shippingRepo repository.ShippingMethodRepository,
) *CheckoutMethodService {
	return &CheckoutMethodService{
		paymentRepo:  paymentRepo,
		shippingRepo: shippingRepo,
	}
}

// ==================== 支付方式 ====================

// CreatePaymentMethod 创建支付方式
func (s *CheckoutMethodService) CreatePaymentMethod(ctx context.Context, req *dto.SavePaymentMethodRequest) (*model.PaymentMethod, error) {
	existing, err := s.paymentRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMethodCodeExists
	}

	method := &model.PaymentMethod{
		Name:      req.Name,
		Code:      req.Code,
		LogoURL:   req.LogoURL,
		Rank:      req.Rank,
		IsActive:  req.IsActive,
		Detail:    datatypes.JSONMap(req.Detail),
		FeeAmount: req.FeeAmount,
	}
	if err := s.paymentRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// ListPaymentMethods 支付方式列表
func (s *CheckoutMethodService) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	return s.paymentRepo.ListAll(ctx)
}

// UpdatePaymentMethod 更新支付方式
func (s *CheckoutMethodService) UpdatePaymentMethod(ctx context.Context, id int64, req *dto.SavePaymentMethodRequest) (*model.PaymentMethod, error) {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrMethodNotFound
	}

	method.Name = req.Name
	method.LogoURL = req.LogoURL
	method.Rank = req.Rank
	method.IsActive = req.IsActive
	method.FeeAmount = req.FeeAmount
	if req.Detail != nil {
		method.Detail = datatypes.JSONMap(req.Detail)
	}

	if err := s.paymentRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod 删除支付方式
func (s *CheckoutMethodService) DeletePaymentMethod(ctx context.Context, id int64) error {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if method == nil {
		return ErrMethodNotFound
	}
	return s.paymentRepo.Delete(ctx, id)
}

// ==================== 物流方式 ====================

// CreateShippingMethod 创建物流方式
func (s *CheckoutMethodService) CreateShippingMethod(ctx context.Context, req *dto.SaveShippingMethodRequest) (*model.ShippingMethod, error) {
	existing, err := s.shippingRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMethodCodeExists
	}

	method := &model.ShippingMethod{
		Name:          req.Name,
		Code:          req.Code,
		LogoURL:       req.LogoURL,
		Rank:          req.Rank,
		IsActive:      req.IsActive,
		BaseFeeAmount: req.BaseFeeAmount,
		PerKgAmount:   req.PerKgAmount,
		EtaDaysMin:    req.EtaDaysMin,
		EtaDaysMax:    req.EtaDaysMax,
	}
	if err := s.shippingRepo.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// ListShippingMethods 物流方式列表
func (s *CheckoutMethodService) ListShippingMethods(ctx context.Context) ([]model.ShippingMethod, error) {
	return s.shippingRepo.ListAll(ctx)
}

// UpdateShippingMethod 更新物流方式
func (s *CheckoutMethodService) UpdateShippingMethod(ctx context.Context, id int64, req *dto.SaveShippingMethodRequest) (*model.ShippingMethod, error) {
	method, err := s.shippingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrMethodNotFound
	}

	method.Name = req.Name
	method.LogoURL = req.LogoURL
	method.Rank = req.Rank
	method.IsActive = req.IsActive
	method.BaseFeeAmount = req.BaseFeeAmount
	method.PerKgAmount = req.PerKgAmount
	method.EtaDaysMin = req.EtaDaysMin
	method.EtaDaysMax = req.EtaDaysMax

	if err := s.shippingRepo.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeleteShippingMethod 删除物流方式
func (s *CheckoutMethodService) DeleteShippingMethod(ctx context.Context, id int64) error {
	method, err := s.shippingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if method == nil {
		return ErrMethodNotFound
	}
	return s.shippingRepo.Delete(ctx, id)
}
