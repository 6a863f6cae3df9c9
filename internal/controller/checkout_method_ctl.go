package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/service"
)

// ==================== CheckoutMethodController 收银配置控制器 ====================

// CheckoutMethodController 支付方式与物流方式管理
type CheckoutMethodController struct {
	methodService *service.CheckoutMethodService
}

// NewCheckoutMethodController 创建收银配置控制器
func NewCheckoutMethodController(methodService *service.CheckoutMethodService) *CheckoutMethodController {
	return &CheckoutMethodController{methodService: methodService}
}

// ==================== 支付方式 ====================

// CreatePaymentMethod 创建支付方式
// @Summary 创建支付方式
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SavePaymentMethodRequest true "支付方式"
// @Success 200 {object} model.PaymentMethod
// @Router /payment-methods [post]
func (c *CheckoutMethodController) CreatePaymentMethod(ctx *gin.Context) {
	var req dto.SavePaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	method, err := c.methodService.CreatePaymentMethod(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodCodeExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": method})
}

// ListPaymentMethods 支付方式列表
// @Summary 支付方式列表
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PaymentMethod
// @Router /payment-methods [get]
func (c *CheckoutMethodController) ListPaymentMethods(ctx *gin.Context) {
	methods, err := c.methodService.ListPaymentMethods(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": methods})
}

// UpdatePaymentMethod 更新支付方式
// @Summary 更新支付方式
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支付方式ID"
// @Success 200 {object} model.PaymentMethod
// @Router /payment-methods/{id} [put]
func (c *CheckoutMethodController) UpdatePaymentMethod(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.SavePaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	method, err := c.methodService.UpdatePaymentMethod(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": method})
}

// DeletePaymentMethod 删除支付方式
// @Summary 删除支付方式
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param id path int true "支付方式ID"
// @Success 200 {object} map[string]interface{}
// @Router /payment-methods/{id} [delete]
func (c *CheckoutMethodController) DeletePaymentMethod(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.methodService.DeletePaymentMethod(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}

// ==================== 物流方式 ====================

// CreateShippingMethod 创建物流方式
// @Summary 创建物流方式
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveShippingMethodRequest true "物流方式"
// @Success 200 {object} model.ShippingMethod
// @Router /shipping-methods [post]
func (c *CheckoutMethodController) CreateShippingMethod(ctx *gin.Context) {
	var req dto.SaveShippingMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	method, err := c.methodService.CreateShippingMethod(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodCodeExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": method})
}

// ListShippingMethods 物流方式列表
// @Summary 物流方式列表
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ShippingMethod
// @Router /shipping-methods [get]
func (c *CheckoutMethodController) ListShippingMethods(ctx *gin.Context) {
	methods, err := c.methodService.ListShippingMethods(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": methods})
}

// UpdateShippingMethod 更新物流方式
// @Summary 更新物流方式
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "物流方式ID"
// @Success 200 {object} model.ShippingMethod
// @Router /shipping-methods/{id} [put]
func (c *CheckoutMethodController) UpdateShippingMethod(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.SaveShippingMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	method, err := c.methodService.UpdateShippingMethod(ctx.Request.Context(), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": method})
}

// DeleteShippingMethod 删除物流方式
// @Summary 删除物流方式
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param id path int true "物流方式ID"
// @Success 200 {object} map[string]interface{}
// @Router /shipping-methods/{id} [delete]
func (c *CheckoutMethodController) DeleteShippingMethod(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.methodService.DeleteShippingMethod(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}
