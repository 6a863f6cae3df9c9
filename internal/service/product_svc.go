package service

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
)

// ==================== 错误定义 ====================

var (
	ErrSKUExists        = errors.New("SKU 已存在")
	ErrCategoryNotFound = errors.New("分类不存在")
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	existing, err := s.productRepo.GetBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUExists
	}

	status := req.Status
	if status == "" {
		status = model.ProductStatusDraft
	}

	images := make([]model.ProductImage, 0, len(req.ImageURLs))
	for i, url := range req.ImageURLs {
		images = append(images, model.ProductImage{URL: url, Rank: i})
	}

	product := &model.Product{
		CategoryID:     req.CategoryID,
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		PriceAmount:    req.PriceAmount,
		OriginalAmount: req.OriginalAmount,
		Stock:          req.Stock,
		Tags:           pq.StringArray(req.Tags),
		Images:         images,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductResponse(product), nil
}

// GetProduct 商品详情
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.toProductResponse(product), nil
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, req *dto.ListProductsRequest) ([]dto.ProductResponse, int64, error) {
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: req.CategoryID,
		Status:     req.Status,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	resps := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resps = append(resps, *s.toProductResponse(&products[i]))
	}
	return resps, total, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.PriceAmount != nil {
		product.PriceAmount = *req.PriceAmount
	}
	if req.OriginalAmount != nil {
		product.OriginalAmount = *req.OriginalAmount
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Tags != nil {
		product.Tags = pq.StringArray(req.Tags)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductResponse(product), nil
}

// DeleteProduct 删除商品（软删）
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// toProductResponse 转换为响应 DTO
func (s *ProductService) toProductResponse(product *model.Product) *dto.ProductResponse {
	urls := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		urls = append(urls, img.URL)
	}

	return &dto.ProductResponse{
		ID:             product.ID,
		CategoryID:     product.CategoryID,
		SKU:            product.SKU,
		Name:           product.Name,
		Description:    product.Description,
		Status:         product.Status,
		PriceAmount:    product.PriceAmount,
		OriginalAmount: product.OriginalAmount,
		Stock:          product.Stock,
		Tags:           product.Tags,
		ImageURLs:      urls,
		CreatedAt:      product.CreatedAt,
	}
}
