package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"buysini_admin_202601/internal/model"
)

// ==================== PromoRepository 促销活动仓库 ====================

// PromoRepository 促销活动仓库接口
type PromoRepository interface {
	Create(ctx context.Context, promo *model.Promo) error
	GetByID(ctx context.Context, id int64) (*model.Promo, error)
	GetByCode(ctx context.Context, code string) (*model.Promo, error)
	List(ctx context.Context, page, pageSize int) ([]model.Promo, int64, error)
	Update(ctx context.Context, promo *model.Promo) error
	// IncrUsedCount 核销一次，带用量上限保护
	IncrUsedCount(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository 创建促销活动仓库
func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) Create(ctx context.Context, promo *model.Promo) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promoRepository) GetByID(ctx context.Context, id int64) (*model.Promo, error) {
	var promo model.Promo
	err := r.db.WithContext(ctx).First(&promo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.Promo, error) {
	var promo model.Promo
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *promoRepository) List(ctx context.Context, page, pageSize int) ([]model.Promo, int64, error) {
	var promos []model.Promo
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Promo{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&promos).Error

	return promos, total, err
}

func (r *promoRepository) Update(ctx context.Context, promo *model.Promo) error {
	return r.db.WithContext(ctx).Save(promo).Error
}

func (r *promoRepository) IncrUsedCount(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.Promo{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("优惠码已达使用上限")
	}
	return nil
}

func (r *promoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Promo{}, id).Error
}
