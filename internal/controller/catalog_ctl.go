package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/service"
)

// ==================== CatalogController 目录配置控制器 ====================

// CatalogController 分类 / 轮播图 / 促销 / 客户的管理接口
type CatalogController struct {
	categoryService *service.CategoryService
	bannerService   *service.BannerService
	promoService    *service.PromoService
	customerService *service.CustomerService
}

// NewCatalogController 创建目录配置控制器
func NewCatalogController(
	categoryService *service.CategoryService,
	bannerService *service.BannerService,
	promoService *service.PromoService,
	customerService *service.CustomerService,
) *CatalogController {
	return &CatalogController{
		categoryService: categoryService,
		bannerService:   bannerService,
		promoService:    promoService,
		customerService: customerService,
	}
}

// ==================== 分类 ====================

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "分类信息"
// @Success 200 {object} dto.CategoryResponse
// @Router /categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.categoryService.CreateCategory(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrCategoryExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": resp})
}

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	resp, err := c.categoryService.ListCategories(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": resp})
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} dto.CategoryResponse
// @Router /categories/{id} [put]
func (c *CatalogController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.categoryService.UpdateCategory(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrCategoryNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": resp})
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} map[string]interface{}
// @Router /categories/{id} [delete]
func (c *CatalogController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrCategoryInUse):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}

// ==================== 轮播图 ====================

// CreateBanner 创建轮播图
// @Summary 创建轮播图
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveBannerRequest true "轮播图信息"
// @Success 200 {object} dto.BannerResponse
// @Router /banners [post]
func (c *CatalogController) CreateBanner(ctx *gin.Context) {
	var req dto.SaveBannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.bannerService.CreateBanner(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": resp})
}

// ListBanners 轮播图列表
// @Summary 轮播图列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param live query bool false "只看投放中"
// @Success 200 {array} dto.BannerResponse
// @Router /banners [get]
func (c *CatalogController) ListBanners(ctx *gin.Context) {
	var (
		resp []dto.BannerResponse
		err  error
	)
	if ctx.Query("live") == "true" {
		resp, err = c.bannerService.ListLiveBanners(ctx.Request.Context())
	} else {
		resp, err = c.bannerService.ListBanners(ctx.Request.Context())
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": resp})
}

// UpdateBanner 更新轮播图
// @Summary 更新轮播图
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "轮播图ID"
// @Success 200 {object} dto.BannerResponse
// @Router /banners/{id} [put]
func (c *CatalogController) UpdateBanner(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.SaveBannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.bannerService.UpdateBanner(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrBannerNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": resp})
}

// DeleteBanner 删除轮播图
// @Summary 删除轮播图
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "轮播图ID"
// @Success 200 {object} map[string]interface{}
// @Router /banners/{id} [delete]
func (c *CatalogController) DeleteBanner(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.bannerService.DeleteBanner(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrBannerNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}

// ==================== 促销 ====================

// CreatePromo 创建促销
// @Summary 创建促销活动
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SavePromoRequest true "促销信息"
// @Success 200 {object} dto.PromoResponse
// @Router /promos [post]
func (c *CatalogController) CreatePromo(ctx *gin.Context) {
	var req dto.SavePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.promoService.CreatePromo(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrPromoCodeExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": resp})
}

// ListPromos 促销列表
// @Summary 促销列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PromoResponse
// @Router /promos [get]
func (c *CatalogController) ListPromos(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	promos, total, err := c.promoService.ListPromos(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"total": total, "promos": promos},
	})
}

// UpdatePromo 更新促销
// @Summary 更新促销活动
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "促销ID"
// @Success 200 {object} dto.PromoResponse
// @Router /promos/{id} [put]
func (c *CatalogController) UpdatePromo(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.SavePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.promoService.UpdatePromo(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrPromoNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": resp})
}

// DeletePromo 删除促销
// @Summary 删除促销活动
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "促销ID"
// @Success 200 {object} map[string]interface{}
// @Router /promos/{id} [delete]
func (c *CatalogController) DeletePromo(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.promoService.DeletePromo(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrPromoNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}

// ==================== 客户 ====================

// CreateCustomer 创建客户
// @Summary 创建客户
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveCustomerRequest true "客户信息"
// @Success 200 {object} dto.CustomerResponse
// @Router /customers [post]
func (c *CatalogController) CreateCustomer(ctx *gin.Context) {
	var req dto.SaveCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.customerService.CreateCustomer(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrCustomerExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": resp})
}

// ListCustomers 客户列表
// @Summary 客户列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
func (c *CatalogController) ListCustomers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	customers, total, err := c.customerService.ListCustomers(ctx.Request.Context(), ctx.Query("keyword"), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"total": total, "customers": customers},
	})
}

// UpdateCustomer 更新客户
// @Summary 更新客户
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} dto.CustomerResponse
// @Router /customers/{id} [put]
func (c *CatalogController) UpdateCustomer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.SaveCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.customerService.UpdateCustomer(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrCustomerNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": resp})
}

// DeleteCustomer 删除客户
// @Summary 删除客户
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} map[string]interface{}
// @Router /customers/{id} [delete]
func (c *CatalogController) DeleteCustomer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.customerService.DeleteCustomer(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrCustomerNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}
