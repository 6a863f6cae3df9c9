package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrPromoNotFound   = errors.New("促销活动不存在")
	ErrPromoCodeExists = errors.New("优惠码已存在")
)

// ==================== PromoService 促销服务 ====================

// PromoService 促销活动服务
type PromoService struct {
	promoRepo repository.PromoRepository
}

// NewPromoService 创建促销服务
func NewPromoService(promoRepo repository.PromoRepository) *PromoService {
	return &PromoService{promoRepo: promoRepo}
}

// CreatePromo 创建促销活动
func (s *PromoService) CreatePromo(ctx context.Context, req *dto.SavePromoRequest) (*dto.PromoResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromoCodeExists
	}

	promo := &model.Promo{
		Code:          code,
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinSpend:      req.MinSpend,
		CategoryIDs:   pq.Int64Array(req.CategoryIDs),
		IsActive:      req.IsActive,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		UsageLimit:    req.UsageLimit,
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return toPromoResponse(promo), nil
}

// ListPromos 促销列表
func (s *PromoService) ListPromos(ctx context.Context, page, pageSize int) ([]dto.PromoResponse, int64, error) {
	promos, total, err := s.promoRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resps := make([]dto.PromoResponse, 0, len(promos))
	for i := range promos {
		resps = append(resps, *toPromoResponse(&promos[i]))
	}
	return resps, total, nil
}

// UpdatePromo 更新促销活动
func (s *PromoService) UpdatePromo(ctx context.Context, id int64, req *dto.SavePromoRequest) (*dto.PromoResponse, error) {
	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}

	promo.Title = req.Title
	promo.Description = req.Description
	promo.DiscountType = req.DiscountType
	promo.DiscountValue = req.DiscountValue
	promo.MinSpend = req.MinSpend
	promo.CategoryIDs = pq.Int64Array(req.CategoryIDs)
	promo.IsActive = req.IsActive
	promo.StartAt = req.StartAt
	promo.EndAt = req.EndAt
	promo.UsageLimit = req.UsageLimit

	if err := s.promoRepo.Update(ctx, promo); err != nil {
		return nil, err
	}
	return toPromoResponse(promo), nil
}

// RedeemPromo 核销一次优惠码
func (s *PromoService) RedeemPromo(ctx context.Context, code string) (*dto.PromoResponse, error) {
	promo, err := s.promoRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	if !promo.IsRedeemable(time.Now()) {
		return nil, ErrPromoNotFound
	}

	if err := s.promoRepo.IncrUsedCount(ctx, promo.ID); err != nil {
		return nil, err
	}
	promo.UsedCount++
	return toPromoResponse(promo), nil
}

// DeletePromo 删除促销活动
func (s *PromoService) DeletePromo(ctx context.Context, id int64) error {
	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if promo == nil {
		return ErrPromoNotFound
	}
	return s.promoRepo.Delete(ctx, id)
}

// toPromoResponse 转换为响应 DTO
func toPromoResponse(promo *model.Promo) *dto.PromoResponse {
	return &dto.PromoResponse{
		ID:            promo.ID,
		Code:          promo.Code,
		Title:         promo.Title,
		DiscountType:  promo.DiscountType,
		DiscountValue: promo.DiscountValue,
		MinSpend:      promo.MinSpend,
		CategoryIDs:   promo.CategoryIDs,
		IsActive:      promo.IsActive,
		IsRedeemable:  promo.IsRedeemable(time.Now()),
		StartAt:       promo.StartAt,
		EndAt:         promo.EndAt,
		UsageLimit:    promo.UsageLimit,
		UsedCount:     promo.UsedCount,
	}
}
