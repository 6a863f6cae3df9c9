package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/middleware"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/repository"
	"buysini_admin_202601/internal/session"
)

// ==================== 测试辅助 ====================

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Admin{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func newAuthTestService(t *testing.T) (*AuthService, repository.AdminRepository, *session.Provider) {
	t.Helper()

	repo := repository.NewAdminRepository(setupAuthTestDB(t))
	provider := session.NewProvider(
		session.NewMemoryStore(time.Minute),
		session.NewMemoryStore(time.Minute),
		time.Minute,
	)
	return NewAuthService(repo, provider), repo, provider
}

func seedAdmin(t *testing.T, repo repository.AdminRepository, email, password string, status int) *model.Admin {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}

	admin := &model.Admin{
		Email:    email,
		Password: string(hashed),
		Name:     "Super Admin",
		Role:     model.RoleAdmin,
		Status:   status,
	}
	if err := repo.Create(context.Background(), admin); err != nil {
		t.Fatalf("创建管理员失败: %v", err)
	}
	return admin
}

// errAdminRepo 模拟认证后端故障
type errAdminRepo struct {
	repository.AdminRepository
}

func (r *errAdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return nil, errors.New("connection refused")
}

// ==================== 登录 ====================

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, repo, provider := newAuthTestService(t)
	ctx := context.Background()

	seedAdmin(t, repo, "login-ok@buysini.com", "secret-123", model.AdminStatusActive)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "login-ok@buysini.com", Password: "secret-123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("应返回 Token")
	}
	if resp.RedirectTo != RedirectDashboard {
		t.Errorf("RedirectTo = %s, want %s", resp.RedirectTo, RedirectDashboard)
	}
	if resp.Admin == nil || resp.Admin.Email != "login-ok@buysini.com" {
		t.Errorf("Admin = %+v", resp.Admin)
	}

	// 会话应可读且内容完整
	claims, err := middleware.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	rec, err := provider.Read(ctx, claims.SID)
	if err != nil {
		t.Fatalf("读会话失败: %v", err)
	}
	if rec.Email != "login-ok@buysini.com" || rec.Role != model.RoleAdmin {
		t.Errorf("rec = %+v", rec)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)

	seedAdmin(t, repo, "wrong-pwd@buysini.com", "secret-123", model.AdminStatusActive)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "wrong-pwd@buysini.com",
		Password: "not-the-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@buysini.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_LoginDisabledAdmin(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)

	seedAdmin(t, repo, "disabled@buysini.com", "secret-123", model.AdminStatusDisabled)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "disabled@buysini.com",
		Password: "secret-123",
	})
	if !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("err = %v, want ErrAdminDisabled", err)
	}
}

// 后端查询失败和凭据错误必须是两种错误：
// 前者是服务问题该提示重试，后者才是输入问题
func TestAuthService_LoginBackendUnavailable(t *testing.T) {
	_, repo, provider := newAuthTestService(t)
	svc := NewAuthService(&errAdminRepo{repo}, provider)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "backend-down@buysini.com",
		Password: "secret-123",
	})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

// 签发 Token 失败同样属于后端故障，不能伪装成凭据错误
func TestAuthService_LoginTokenSignFailure(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)

	seedAdmin(t, repo, "sign-fail@buysini.com", "secret-123", model.AdminStatusActive)
	svc.signToken = func(adminID int64, email, name, role, sid string) (string, error) {
		return "", errors.New("signing key unavailable")
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sign-fail@buysini.com",
		Password: "secret-123",
	})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestAuthService_LoginRateLimited(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)
	ctx := context.Background()

	email := fmt.Sprintf("ratelimit-%d@buysini.com", time.Now().UnixNano())
	seedAdmin(t, repo, email, "secret-123", model.AdminStatusActive)

	// 连续错 5 次后应触发限流
	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: email, Password: "bad"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("第 %d 次: err = %v", i+1, err)
		}
	}

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: email, Password: "secret-123"})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Errorf("err = %v, want ErrTooManyAttempts", err)
	}
}

// ==================== 登出 ====================

func TestAuthService_LogoutClearsSession(t *testing.T) {
	svc, repo, provider := newAuthTestService(t)
	ctx := context.Background()

	seedAdmin(t, repo, "logout@buysini.com", "secret-123", model.AdminStatusActive)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "logout@buysini.com", Password: "secret-123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, _ := middleware.ParseToken(resp.Token)

	out := svc.Logout(ctx, claims.SID)
	if out.RedirectTo != RedirectLogin {
		t.Errorf("RedirectTo = %s, want %s", out.RedirectTo, RedirectLogin)
	}

	if _, err := provider.Read(ctx, claims.SID); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("登出后 Read err = %v, want ErrNoSession", err)
	}
}

// ==================== 管理员管理 ====================

func TestAuthService_CreateAdminDuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)
	ctx := context.Background()

	seedAdmin(t, repo, "dup@buysini.com", "secret-123", model.AdminStatusActive)

	_, err := svc.CreateAdmin(ctx, &dto.CreateAdminRequest{
		Email:    "dup@buysini.com",
		Password: "password-8",
		Name:     "Dup",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := newAuthTestService(t)
	ctx := context.Background()

	admin := seedAdmin(t, repo, "chpwd@buysini.com", "old-secret", model.AdminStatusActive)

	// 旧密码错
	err := svc.ChangePassword(ctx, admin.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-secret-8",
	})
	if !errors.Is(err, ErrInvalidOldPassword) {
		t.Fatalf("err = %v, want ErrInvalidOldPassword", err)
	}

	// 正常修改后新密码可登录
	if err := svc.ChangePassword(ctx, admin.ID, &dto.ChangePasswordRequest{
		OldPassword: "old-secret",
		NewPassword: "new-secret-8",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "chpwd@buysini.com", Password: "new-secret-8"}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}
