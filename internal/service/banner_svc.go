package service

import (
	"context"
	"errors"
	"time"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var ErrBannerNotFound = errors.New("轮播图不存在")

// ==================== BannerService 轮播图服务 ====================

// BannerService 首页轮播图服务
type BannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService 创建轮播图服务
func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// CreateBanner 创建轮播图
func (s *BannerService) CreateBanner(ctx context.Context, req *dto.SaveBannerRequest) (*dto.BannerResponse, error) {
	banner := &model.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Rank:     req.Rank,
		IsActive: req.IsActive,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return toBannerResponse(banner), nil
}

// ListBanners 全部轮播图（管理页）
func (s *BannerService) ListBanners(ctx context.Context) ([]dto.BannerResponse, error) {
	banners, err := s.bannerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]dto.BannerResponse, 0, len(banners))
	for i := range banners {
		resps = append(resps, *toBannerResponse(&banners[i]))
	}
	return resps, nil
}

// ListLiveBanners 正在投放的轮播图（前台取用）
func (s *BannerService) ListLiveBanners(ctx context.Context) ([]dto.BannerResponse, error) {
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resps := make([]dto.BannerResponse, 0, len(banners))
	for i := range banners {
		if banners[i].IsLive(now) {
			resps = append(resps, *toBannerResponse(&banners[i]))
		}
	}
	return resps, nil
}

// UpdateBanner 更新轮播图
func (s *BannerService) UpdateBanner(ctx context.Context, id int64, req *dto.SaveBannerRequest) (*dto.BannerResponse, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	banner.Title = req.Title
	banner.ImageURL = req.ImageURL
	banner.LinkURL = req.LinkURL
	banner.Rank = req.Rank
	banner.IsActive = req.IsActive
	banner.StartAt = req.StartAt
	banner.EndAt = req.EndAt

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, err
	}
	return toBannerResponse(banner), nil
}

// DeleteBanner 删除轮播图
func (s *BannerService) DeleteBanner(ctx context.Context, id int64) error {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrBannerNotFound
	}
	return s.bannerRepo.Delete(ctx, id)
}

// toBannerResponse 转换为响应 DTO
func toBannerResponse(banner *model.Banner) *dto.BannerResponse {
	return &dto.BannerResponse{
		ID:       banner.ID,
		Title:    banner.Title,
		ImageURL: banner.ImageURL,
		LinkURL:  banner.LinkURL,
		Rank:     banner.Rank,
		IsActive: banner.IsActive,
		IsLive:   banner.IsLive(time.Now()),
		StartAt:  banner.StartAt,
		EndAt:    banner.EndAt,
	}
}
