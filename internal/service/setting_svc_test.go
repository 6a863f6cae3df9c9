package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/api/dto"
	"buysini_admin_202601/internal/model"
	"buysini_admin_202601/internal/realtime"
	"buysini_admin_202601/internal/repository"
)

func newSettingTestService(t *testing.T) (*SettingService, repository.SettingRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Setting{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}

	repo := repository.NewSettingRepository(db)
	return NewSettingService(repo, realtime.NewHub()), repo
}

func TestSettingService_UpsertThenGet(t *testing.T) {
	svc, _ := newSettingTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, &dto.UpsertSettingRequest{
		Key:   "site_name",
		Value: "Buysini",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	value, err := svc.GetValue(ctx, "site_name")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if value != "Buysini" {
		t.Errorf("value = %s, want Buysini", value)
	}
}

func TestSettingService_GetMissing(t *testing.T) {
	svc, _ := newSettingTestService(t)

	_, err := svc.GetValue(context.Background(), "no_such_key")
	if !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("err = %v, want ErrSettingNotFound", err)
	}
}

// 读走缓存：绕过服务直接改库，缓存期内读到旧值；
// 通过服务写入后缓存失效，读到新值
func TestSettingService_CacheInvalidation(t *testing.T) {
	svc, repo := newSettingTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, &dto.UpsertSettingRequest{Key: "hero_color", Value: "#ffffff"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// 填充缓存
	if _, err := svc.GetValue(ctx, "hero_color"); err != nil {
		t.Fatalf("GetValue: %v", err)
	}

	// 直接改库
	if err := repo.UpdateValue(ctx, "hero_color", "#000000"); err != nil {
		t.Fatalf("UpdateValue: %v", err)
	}

	value, _ := svc.GetValue(ctx, "hero_color")
	if value != "#ffffff" {
		t.Errorf("缓存期内应读到旧值, got %s", value)
	}

	// 走服务写入，缓存失效
	if _, err := svc.Upsert(ctx, &dto.UpsertSettingRequest{Key: "hero_color", Value: "#ff0000"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	value, _ = svc.GetValue(ctx, "hero_color")
	if value != "#ff0000" {
		t.Errorf("写入后应读到新值, got %s", value)
	}
}

func TestSettingService_BatchUpsert(t *testing.T) {
	svc, _ := newSettingTestService(t)
	ctx := context.Background()

	err := svc.BatchUpsert(ctx, &dto.BatchUpsertSettingsRequest{
		Settings: []dto.UpsertSettingRequest{
			{Key: "site_name", Value: "Buysini"},
			{Key: "contact_email", Value: "cs@buysini.com"},
			{Key: "hero_color", Value: "#aa0000", Type: model.SettingTypeColor},
		},
	})
	if err != nil {
		t.Fatalf("BatchUpsert: %v", err)
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("设置项数 = %d, want 3", len(all))
	}
}
