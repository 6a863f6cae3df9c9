package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/service"
)

// ==================== NavController 导航控制器 ====================

// NavController 导航控制器
type NavController struct {
	navService *service.NavService
}

// NewNavController 创建导航控制器
func NewNavController(navService *service.NavService) *NavController {
	return &NavController{navService: navService}
}

// GetMenu 侧边栏菜单
// @Summary 侧边栏菜单（含待处理角标）
// @Tags Nav
// @Produce json
// @Security BearerAuth
// @Param active_path query string false "当前路由"
// @Success 200 {object} dto.NavStateResponse
// @Router /nav/menu [get]
func (c *NavController) GetMenu(ctx *gin.Context) {
	state := c.navService.Menu(ctx.Query("active_path"))

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    state,
	})
}

// GetRegions 折叠区域状态
// @Summary 当前会话的折叠区域状态
// @Tags Nav
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /nav/regions [get]
func (c *NavController) GetRegions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    c.navService.Regions(middleware.GetSID(ctx)),
	})
}

// SetRegion 上报折叠区域开合
// @Summary 上报折叠区域开合
// @Tags Nav
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegionStateRequest true "区域状态"
// @Success 200 {object} map[string]interface{}
// @Router /nav/regions [put]
func (c *NavController) SetRegion(ctx *gin.Context) {
	var req dto.RegionStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	c.navService.SetRegion(middleware.GetSID(ctx), req.Region, req.Open)
	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// RouteChanged 路由切换上报
// @Summary 路由切换上报（收起遮罩、订单页清零角标）
// @Tags Nav
// @Produce json
// @Security BearerAuth
// @Param path query string true "新路由"
// @Success 200 {object} map[string]interface{}
// @Router /nav/route [post]
func (c *NavController) RouteChanged(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "缺少 path 参数"})
		return
	}

	c.navService.OnRouteChange(middleware.GetSID(ctx), path)
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"pending_count": c.navService.PendingCount(),
			"title":         c.navService.PageTitle(path),
		},
	})
}

// AcknowledgeBadge 手动清零角标
// @Summary 清零待处理角标
// @Tags Nav
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /nav/badge/ack [post]
func (c *NavController) AcknowledgeBadge(ctx *gin.Context) {
	c.navService.Acknowledge()
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"pending_count": 0},
	})
}

// StreamBadge SSE 推送角标变化
// @Summary SSE 实时推送待处理角标
// @Tags Nav
// @Security BearerAuth
// @Produce text/event-stream
// @Router /nav/badge/stream [get]
func (c *NavController) StreamBadge(ctx *gin.Context) {
	// 设置 SSE 响应头
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Access-Control-Allow-Origin", "*")

	ch := c.navService.WatchCounter()
	defer c.navService.UnwatchCounter(ch)

	// 先推一次当前值，避免前端等到下次变更才有角标
	ctx.SSEvent("badge", gin.H{"pending_count": c.navService.PendingCount()})
	ctx.Writer.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	clientGone := ctx.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case <-ticker.C:
			// 心跳
			ctx.SSEvent("heartbeat", gin.H{"time": time.Now().Unix()})
			ctx.Writer.Flush()
		case count, ok := <-ch:
			if !ok {
				return
			}
			ctx.SSEvent("badge", gin.H{"pending_count": count})
			ctx.Writer.Flush()
		}
	}
}
