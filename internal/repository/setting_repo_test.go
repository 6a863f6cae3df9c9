package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buysini_admin_202601/internal/model"
)

func setupSettingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Setting{}); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func TestSettingRepository_UpsertInsertsThenUpdates(t *testing.T) {
	repo := NewSettingRepository(setupSettingTestDB(t))
	ctx := context.Background()

	// 第一次：插入
	err := repo.Upsert(ctx, &model.Setting{
		Key:   "site_name",
		Value: "Buysini",
		Type:  model.SettingTypeText,
	})
	if err != nil {
		t.Fatalf("首次 Upsert: %v", err)
	}

	// 第二次：同 key 应更新而非报唯一键冲突
	err = repo.Upsert(ctx, &model.Setting{
		Key:   "site_name",
		Value: "Buysini Store",
		Type:  model.SettingTypeText,
	})
	if err != nil {
		t.Fatalf("二次 Upsert: %v", err)
	}

	got, err := repo.GetByKey(ctx, "site_name")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got == nil || got.Value != "Buysini Store" {
		t.Errorf("got = %+v, want value 'Buysini Store'", got)
	}

	// 不应产生第二条记录
	all, _ := repo.GetAll(ctx)
	if len(all) != 1 {
		t.Errorf("记录数 = %d, want 1", len(all))
	}
}

func TestSettingRepository_GetByKeyMissing(t *testing.T) {
	repo := NewSettingRepository(setupSettingTestDB(t))

	got, err := repo.GetByKey(context.Background(), "no_such_key")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil", got)
	}
}

func TestSettingRepository_UpdateValue(t *testing.T) {
	repo := NewSettingRepository(setupSettingTestDB(t))
	ctx := context.Background()

	_ = repo.Create(ctx, &model.Setting{Key: "hero_color", Value: "#ffffff", Type: model.SettingTypeColor})

	if err := repo.UpdateValue(ctx, "hero_color", "#ff0000"); err != nil {
		t.Fatalf("UpdateValue: %v", err)
	}

	got, _ := repo.GetByKey(ctx, "hero_color")
	if got.Value != "#ff0000" {
		t.Errorf("value = %s, want #ff0000", got.Value)
	}
}
