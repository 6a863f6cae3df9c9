package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"buysini_admin_202601/internal/model"
)

// ==================== ShippingMethodRepository 物流方式仓库 ====================

// ShippingMethodRepository 物流方式仓库接口
type ShippingMethodRepository interface {
	Create(ctx context.Context, method *model.ShippingMethod) error
	GetByID(ctx context.Context, id int64) (*model.ShippingMethod, error)
	GetByCode(ctx context.Context, code string) (*model.ShippingMethod, error)
	ListAll(ctx context.Context) ([]model.ShippingMethod, error)
	Update(ctx context.Context, method *model.ShippingMethod) error
	Delete(ctx context.Context, id int64) error
}

type shippingMethodRepository struct {
	db *gorm.DB
}

// NewShippingMethodRepository 创建物流方式仓库
func NewShippingMethodRepository(db *gorm.DB) ShippingMethodRepository {
	return &shippingMethodRepository{db: db}
}

func (r *shippingMethodRepository) Create(ctx context.Context, method *model.ShippingMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *shippingMethodRepository) GetByID(ctx context.Context, id int64) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	err := r.db.WithContext(ctx).First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *shippingMethodRepository) GetByCode(ctx context.Context, code string) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *shippingMethodRepository) ListAll(ctx context.Context) ([]model.ShippingMethod, error) {
	var methods []model.ShippingMethod
	err := r.db.WithContext(ctx).
		Order("rank ASC, id ASC").
		Find(&methods).Error
	return methods, err
}

func (r *shippingMethodRepository) Update(ctx context.Context, method *model.ShippingMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *shippingMethodRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ShippingMethod{}, id).Error
}
