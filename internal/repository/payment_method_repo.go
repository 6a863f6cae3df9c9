package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"buysini_admin_202601/internal/model"
)

// ==================== PaymentMethodRepository 支付方式仓库 ====================

// PaymentMethodRepository 支付方式仓库接口
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *model.PaymentMethod) error
	GetByID(ctx context.Context, id int64) (*model.PaymentMethod, error)
	GetByCode(ctx context.Context, code string) (*model.PaymentMethod, error)
	ListAll(ctx context.Context) ([]model.PaymentMethod, error)
	Update(ctx context.Context, method *model.PaymentMethod) error
	Delete(ctx context.Context, id int64) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository 创建支付方式仓库
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id int64) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) GetByCode(ctx context.Context, code string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) ListAll(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.WithContext(ctx).
		Order("rank ASC, id ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.PaymentMethod{}, id).Error
}
