package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/service"
)

// ==================== SettingController 设置控制器 ====================

// SettingController 站点设置控制器
type SettingController struct {
	settingService *service.SettingService
	storageService *service.StorageService
}

// NewSettingController 创建设置控制器
func NewSettingController(settingService *service.SettingService, storageService *service.StorageService) *SettingController {
	return &SettingController{
		settingService: settingService,
		storageService: storageService,
	}
}

// GetSettings 全部设置
// @Summary 全部设置
// @Tags Setting
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SettingResponse
// @Router /settings [get]
func (c *SettingController) GetSettings(ctx *gin.Context) {
	resp, err := c.settingService.GetAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": resp})
}

// GetSetting 单个设置项
// @Summary 按 key 查询设置
// @Tags Setting
// @Produce json
// @Security BearerAuth
// @Param key path string true "设置键"
// @Success 200 {object} map[string]interface{}
// @Router /settings/{key} [get]
func (c *SettingController) GetSetting(ctx *gin.Context) {
	key := ctx.Param("key")

	value, err := c.settingService.GetValue(ctx.Request.Context(), key)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrSettingNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"key": key, "value": value},
	})
}

// UpsertSetting 写入设置项
// @Summary 写入设置项（存在则更新）
// @Tags Setting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertSettingRequest true "设置项"
// @Success 200 {object} dto.SettingResponse
// @Router /settings [put]
func (c *SettingController) UpsertSetting(ctx *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.settingService.Upsert(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已保存", "data": resp})
}

// BatchUpsertSettings 批量写入设置
// @Summary 批量写入设置（设置页整页保存）
// @Tags Setting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchUpsertSettingsRequest true "设置项列表"
// @Success 200 {object} map[string]interface{}
// @Router /settings/batch [put]
func (c *SettingController) BatchUpsertSettings(ctx *gin.Context) {
	var req dto.BatchUpsertSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := c.settingService.BatchUpsert(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已保存", "data": gin.H{"count": len(req.Settings)}})
}

// DeleteSetting 删除设置项
// @Summary 删除设置项
// @Tags Setting
// @Produce json
// @Security BearerAuth
// @Param key path string true "设置键"
// @Success 200 {object} map[string]interface{}
// @Router /settings/{key} [delete]
func (c *SettingController) DeleteSetting(ctx *gin.Context) {
	if err := c.settingService.Delete(ctx.Request.Context(), ctx.Param("key")); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "已删除"})
}

// UploadImage 上传图片
// @Summary 上传 base64 图片，返回可访问地址
// @Tags Setting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadImageRequest true "base64 图片"
// @Success 200 {object} map[string]interface{}
// @Router /settings/upload [post]
func (c *SettingController) UploadImage(ctx *gin.Context) {
	var req dto.UploadImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	url, err := c.storageService.UploadBase64(ctx.Request.Context(), req.Data, req.Prefix)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "上传失败: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "上传成功", "data": gin.H{"url": url}})
}
