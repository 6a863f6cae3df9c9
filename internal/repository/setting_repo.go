package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"buysini_admin_202601/internal/model"
)

// ==================== SettingRepository 站点设置仓库 ====================

// SettingRepository 站点设置仓库接口
type SettingRepository interface {
	GetAll(ctx context.Context) ([]model.Setting, error)
	GetByKey(ctx context.Context, key string) (*model.Setting, error)
	// Upsert 按 key 冲突更新
	Upsert(ctx context.Context, setting *model.Setting) error
	Create(ctx context.Context, setting *model.Setting) error
	UpdateValue(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ==================== 实现 ====================

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建站点设置仓库
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).Find(&settings).Error
	return settings, err
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &setting, err
}

// Upsert 以 key 为冲突列的插入或更新
func (r *settingRepository) Upsert(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "type", "description", "updated_at"}),
		}).
		Create(setting).Error
}

func (r *settingRepository) Create(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepository) UpdateValue(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Model(&model.Setting{}).
		Where("key = ?", key).
		Update("value", value).Error
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.Setting{}).Error
}
