package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/service"
	"buysini_admin_202601/internal/session"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	authService *service.AuthService
	navService  *service.NavService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService, navService *service.NavService) *AuthController {
	return &AuthController{
		authService: authService,
		navService:  navService,
	}
}

// ==================== 登录 / 登出 ====================

// Login 管理员登录
// @Summary 管理员登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		// 后端故障和凭据错误分开报，前端提示语不同
		switch {
		case errors.Is(err, service.ErrBackendUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrTooManyAttempts):
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": err.Error(),
			})
		default:
			ctx.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": err.Error(),
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "登录成功",
		"data":    resp,
	})
}

// Logout 登出
// @Summary 登出
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LogoutResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	sid := middleware.GetSID(ctx)
	resp := c.authService.Logout(ctx.Request.Context(), sid)

	// 导航状态跟着会话走，登出一并丢弃
	c.navService.DropSession(sid)

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "已登出",
		"data":    resp,
	})
}

// GetSession 当前会话
// @Summary 查询当前会话
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionResp
// @Failure 401 {object} map[string]interface{}
// @Router /auth/session [get]
func (c *AuthController) GetSession(ctx *gin.Context) {
	resp, err := c.authService.CheckSession(ctx.Request.Context(), middleware.GetSID(ctx))
	if err != nil {
		reason := "no_session"
		if errors.Is(err, session.ErrCorruptSession) {
			reason = "corrupt_session"
		}
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
			"data":    gin.H{"reason": reason},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// ==================== 管理员管理 ====================

// CreateAdmin 创建管理员
// @Summary 创建管理员
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "管理员信息"
// @Success 200 {object} dto.AdminResp
// @Router /admins [post]
func (c *AuthController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authService.CreateAdmin(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailExists) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "创建成功", "data": resp})
}

// ListAdmins 管理员列表
// @Summary 管理员列表
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminResp
// @Router /admins [get]
func (c *AuthController) ListAdmins(ctx *gin.Context) {
	var req dto.ListAdminsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	admins, total, err := c.authService.ListAdmins(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"total": total, "admins": admins},
	})
}

// UpdateAdmin 更新管理员
// @Summary 更新管理员
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "管理员ID"
// @Param request body dto.UpdateAdminRequest true "更新内容"
// @Success 200 {object} dto.AdminResp
// @Router /admins/{id} [put]
func (c *AuthController) UpdateAdmin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的管理员ID"})
		return
	}

	var req dto.UpdateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authService.UpdateAdmin(ctx.Request.Context(), middleware.GetAdminID(ctx), id, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrCannotDeleteSelf):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "更新成功", "data": resp})
}

// ChangePassword 修改自己的密码
// @Summary 修改密码
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} map[string]interface{}
// @Router /admins/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), middleware.GetAdminID(ctx), &req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidOldPassword) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"code": status, "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "密码已修改"})
}
