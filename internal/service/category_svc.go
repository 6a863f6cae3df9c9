package service

import (
	"context"
	"errors"
	"strings"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrCategoryExists = errors.New("分类名已存在")
	ErrCategoryInUse  = errors.New("分类下还有商品，不能删除")
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 商品分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Rank:        req.Rank,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories 分类列表
func (s *CategoryService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resps := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resps = append(resps, *toCategoryResponse(&categories[i]))
	}
	return resps, nil
}

// UpdateCategory 更新分类
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.Rank != nil {
		category.Rank = *req.Rank
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory 删除分类
// 分类下还有商品时拒绝删除
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	_, total, err := s.productRepo.List(ctx, repository.ProductFilter{CategoryID: id, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}

// slugify 由名称生成 URL slug
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

// toCategoryResponse 转换为响应 DTO
func toCategoryResponse(category *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		Rank:        category.Rank,
		IsActive:    category.IsActive,
	}
}
