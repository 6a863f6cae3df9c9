package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/session"
)

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrBackendUnavailable = errors.New("认证服务暂不可用")
	ErrAdminDisabled      = errors.New("账号已禁用")
	ErrAdminNotFound      = errors.New("管理员不存在")
	ErrEmailExists        = errors.New("邮箱已存在")
	ErrInvalidOldPassword = errors.New("旧密码错误")
	ErrTooManyAttempts    = errors.New("尝试次数过多，请稍后再试")
	ErrCannotDeleteSelf   = errors.New("不能停用当前登录账号")
)

// 登录成功/登出后的落地页
const (
	RedirectDashboard = "/admin/dashboard"
	RedirectLogin     = "/admin/login"
)

// ==================== AuthService 认证服务 ====================

// AuthService 后台认证服务
// 登录凭据的唯一写入口：一次成功登录只触发一次会话写入
type AuthService struct {
	adminRepo repository.AdminRepository
	provider  *session.Provider
	limiter   *middleware.LoginRateLimiter
	signToken func(adminID int64, email, name, role, sid string) (string, error)
}

// NewAuthService 创建认证服务
func NewAuthService(adminRepo repository.AdminRepository, provider *session.Provider) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		provider:  provider,
		limiter:   middleware.GetLoginLimiter(),
		signToken: middleware.GenerateAccessToken,
	}
}

// ==================== 登录 / 登出 ====================

// Login 管理员登录
// 两类失败要区分开：
//   - 凭据不对（查无此人/密码错/已禁用）→ ErrInvalidCredentials 等，401
//   - 认证后端查询失败 → ErrBackendUnavailable，503，提示稍后重试
//
// 前者清空输入重试即可，后者重试输入多少遍都没用
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 限流检查
	if result := s.limiter.Check(req.Email); !result.Allowed {
		return nil, ErrTooManyAttempts
	}

	// 查找账号
	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("[Auth] 查询管理员失败: %v", err)
		return nil, ErrBackendUnavailable
	}
	if admin == nil {
		s.limiter.MarkFailure(req.Email)
		return nil, ErrInvalidCredentials
	}

	// 检查状态
	if !admin.IsActive() {
		s.limiter.MarkFailure(req.Email)
		return nil, ErrAdminDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		s.limiter.MarkFailure(req.Email)
		return nil, ErrInvalidCredentials
	}

	// 生成会话标识和 Token
	// 签发失败是服务端问题，不能让前端当成凭据错误处理
	sid := uuid.NewString()
	token, err := s.signToken(admin.ID, admin.Email, admin.Name, admin.Role, sid)
	if err != nil {
		log.Printf("[Auth] 签发 Token 失败: %v", err)
		return nil, ErrBackendUnavailable
	}

	// 写入会话凭据（整个登录流程只有这一次写入）
	rec := &session.Record{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      admin.Role,
		IssuedAt:  time.Now(),
	}
	if err := s.provider.Write(ctx, sid, rec, token); err != nil {
		log.Printf("[Auth] 写入会话失败: %v", err)
		return nil, ErrBackendUnavailable
	}

	s.limiter.Reset(req.Email)

	// 更新最后登录时间，失败不阻断登录
	_ = s.adminRepo.UpdateLastLogin(ctx, admin.ID)

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		Token:      token,
		ExpiresAt:  time.Now().Add(cfg.AccessTokenTTL),
		Admin:      s.toAdminResp(admin),
		RedirectTo: RedirectDashboard,
	}, nil
}

// Logout 登出
// 本地凭据清除是确定发生的；后端注销只是尽力而为，
// 失败也只记日志，绝不把用户困在已登出一半的状态里
func (s *AuthService) Logout(ctx context.Context, sid string) *dto.LogoutResponse {
	s.provider.Clear(ctx, sid)
	return &dto.LogoutResponse{RedirectTo: RedirectLogin}
}

// CheckSession 查询当前会话
func (s *AuthService) CheckSession(ctx context.Context, sid string) (*dto.SessionResp, error) {
	rec, err := s.provider.Read(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResp{
		Email:    rec.Email,
		Name:     rec.Name,
		Role:     rec.Role,
		IssuedAt: rec.IssuedAt,
	}, nil
}

// ==================== 管理员管理 ====================

// CreateAdmin 创建管理员
func (s *AuthService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResp, error) {
	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleAdmin
	}

	admin := &model.Admin{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Role:     role,
		Status:   model.AdminStatusActive,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return s.toAdminResp(admin), nil
}

// UpdateAdmin 更新管理员
func (s *AuthService) UpdateAdmin(ctx context.Context, operatorID, id int64, req *dto.UpdateAdminRequest) (*dto.AdminResp, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	// 不允许把自己停用
	if req.Status != nil && *req.Status == model.AdminStatusDisabled && id == operatorID {
		return nil, ErrCannotDeleteSelf
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = *req.Role
	}
	if req.Status != nil {
		admin.Status = *req.Status
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return s.toAdminResp(admin), nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, adminID int64, req *dto.ChangePasswordRequest) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.adminRepo.UpdatePassword(ctx, adminID, string(hashed))
}

// ListAdmins 管理员列表
func (s *AuthService) ListAdmins(ctx context.Context, req *dto.ListAdminsRequest) ([]dto.AdminResp, int64, error) {
	admins, total, err := s.adminRepo.List(ctx, repository.AdminFilter{
		Keyword:  req.Keyword,
		Role:     req.Role,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	resps := make([]dto.AdminResp, 0, len(admins))
	for i := range admins {
		resps = append(resps, *s.toAdminResp(&admins[i]))
	}
	return resps, total, nil
}

// toAdminResp 转换为响应 DTO
func (s *AuthService) toAdminResp(admin *model.Admin) *dto.AdminResp {
	return &dto.AdminResp{
		ID:          admin.ID,
		Email:       admin.Email,
		Name:        admin.Name,
		Role:        admin.Role,
		Status:      admin.Status,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
	}
}
