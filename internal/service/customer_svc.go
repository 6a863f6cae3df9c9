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
	ErrCustomerNotFound = errors.New("客户不存在")
	ErrCustomerExists   = errors.New("客户邮箱已存在")
)

// ==================== CustomerService 客户服务 ====================

// CustomerService 店铺客户服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer 创建客户
func (s *CustomerService) CreateCustomer(ctx context.Context, req *dto.SaveCustomerRequest) (*dto.CustomerResponse, error) {
	if req.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCustomerExists
		}
	}

	customer := &model.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  datatypes.JSONMap(req.Address),
		IsActive: true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer 客户详情
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers 客户列表
func (s *CustomerService) ListCustomers(ctx context.Context, keyword string, page, pageSize int) ([]dto.CustomerResponse, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, repository.CustomerFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	resps := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resps = append(resps, *toCustomerResponse(&customers[i]))
	}
	return resps, total, nil
}

// UpdateCustomer 更新客户
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *dto.SaveCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if req.Address != nil {
		customer.Address = datatypes.JSONMap(req.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// DeleteCustomer 删除客户（软删）
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(ctx, id)
}

// toCustomerResponse 转换为响应 DTO
func toCustomerResponse(customer *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		OrderCount:  customer.OrderCount,
		TotalAmount: customer.TotalAmount,
		LastOrderAt: customer.LastOrderAt,
		CreatedAt:   customer.CreatedAt,
	}
}
