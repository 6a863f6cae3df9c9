package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"buysini_admin_202601/internal/model"
)

// ==================== BannerRepository 轮播图仓库 ====================

// BannerRepository 轮播图仓库接口
type BannerRepository interface {
	Create(ctx context.Context, banner *model.Banner) error
	GetByID(ctx context.Context, id int64) (*model.Banner, error)
	ListAll(ctx context.Context) ([]model.Banner, error)
	ListActive(ctx context.Context) ([]model.Banner, error)
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id int64) error
}

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建轮播图仓库
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepository) GetByID(ctx context.Context, id int64) (*model.Banner, error) {
	var banner model.Banner
	err := r.db.WithContext(ctx).First(&banner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &banner, err
}

func (r *bannerRepository) ListAll(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Order("rank ASC, id ASC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) ListActive(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("rank ASC, id ASC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *bannerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Banner{}, id).Error
}
